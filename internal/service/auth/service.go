package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kamesh6592-cell/zola/internal/model"
	"github.com/kamesh6592-cell/zola/internal/repository"
)

var (
	jwtSecretOnce sync.Once
	jwtSecret     string
)

// getJwtSecret 获取 JWT 密钥
func getJwtSecret() string {
	jwtSecretOnce.Do(func() {
		if envSecret := strings.TrimSpace(os.Getenv("JWT_SECRET")); envSecret != "" {
			jwtSecret = envSecret
			return
		}

		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			panic(fmt.Sprintf("failed to generate JWT secret: %v", err))
		}
		jwtSecret = base64.StdEncoding.EncodeToString(randomBytes)
	})

	return jwtSecret
}

// Service 认证服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建认证服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	Password    string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message,omitempty"`
	User         *model.User `json:"user,omitempty"`
	Token        string      `json:"token,omitempty"`
	RefreshToken string      `json:"refresh_token,omitempty"`
}

// Register 注册用户
// 注意：用户行在此同步写入；OAuth 路径上该行由回调后的异步触发器写入，
// 身份解析器据此做有界重试
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	existingUser, _ := s.repo.User.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hashedPassword),
		Anonymous:    false,
	}

	if err := s.repo.User.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login 用户登录
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.User.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return &LoginResponse{
			Success: false,
			Message: "Invalid email or password",
		}, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return &LoginResponse{
			Success: false,
			Message: "Invalid email or password",
		}, nil
	}

	accessToken, refreshToken, err := s.generateTokens(ctx, user)
	if err != nil {
		return &LoginResponse{
			Success: false,
			Message: "Login failed",
		}, err
	}

	return &LoginResponse{
		Success:      true,
		Message:      "Login successful",
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateToken 验证令牌
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(getJwtSecret()), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid user ID in token")
	}

	// 检查令牌是否被撤销
	tokenRecord, err := s.repo.Auth.GetTokenByValue(ctx, tokenString)
	if err != nil || tokenRecord == nil || tokenRecord.IsRevoked {
		return nil, errors.New("token is revoked")
	}

	return s.repo.User.GetUserByID(ctx, userID)
}

// RefreshToken 刷新令牌
func (s *Service) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	token, err := jwt.Parse(refreshTokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(getJwtSecret()), nil
	})

	if err != nil || !token.Valid {
		return "", "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return "", "", errors.New("not a refresh token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", errors.New("invalid user ID in token")
	}

	tokenRecord, err := s.repo.Auth.GetTokenByValue(ctx, refreshTokenString)
	if err != nil || tokenRecord == nil || tokenRecord.IsRevoked {
		return "", "", errors.New("refresh token is revoked")
	}

	user, err := s.repo.User.GetUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	// 撤销旧的刷新令牌
	_ = s.repo.Auth.RevokeToken(ctx, tokenRecord.ID)

	return s.generateTokens(ctx, user)
}

// RevokeToken 撤销令牌
func (s *Service) RevokeToken(ctx context.Context, tokenString string) error {
	tokenRecord, err := s.repo.Auth.GetTokenByValue(ctx, tokenString)
	if err != nil {
		return err
	}

	return s.repo.Auth.RevokeToken(ctx, tokenRecord.ID)
}

// generateTokens 生成访问令牌和刷新令牌
func (s *Service) generateTokens(ctx context.Context, user *model.User) (string, string, error) {
	// 访问令牌（24小时有效）
	accessClaims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	accessTokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessToken, err := accessTokenObj.SignedString([]byte(getJwtSecret()))
	if err != nil {
		return "", "", err
	}

	// 刷新令牌（7天有效）
	refreshClaims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "refresh",
	}

	refreshTokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshToken, err := refreshTokenObj.SignedString([]byte(getJwtSecret()))
	if err != nil {
		return "", "", err
	}

	accessTokenRecord := &model.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     accessToken,
		TokenType: "access_token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	refreshTokenRecord := &model.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     refreshToken,
		TokenType: "refresh_token",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}

	_ = s.repo.Auth.CreateToken(ctx, accessTokenRecord)
	_ = s.repo.Auth.CreateToken(ctx, refreshTokenRecord)

	return accessToken, refreshToken, nil
}
