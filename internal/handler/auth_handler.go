package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kamesh6592-cell/zola/internal/service"
	"github.com/kamesh6592-cell/zola/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	user, err := h.svc.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, user.ToUserInfo())
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, resp)
}

// RefreshToken 刷新令牌
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters")
		return
	}

	accessToken, newRefreshToken, err := h.svc.Auth.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		BadRequest(c, "Invalid refresh token")
		return
	}

	Success(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
	})
}

// Logout 用户登出
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		BadRequest(c, "Missing or invalid Authorization header")
		return
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if err := h.svc.Auth.RevokeToken(c.Request.Context(), token); err != nil {
		Error(c, err)
		return
	}

	Success(c, nil)
}
