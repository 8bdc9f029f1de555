package repository

import (
	"context"
	"time"

	"github.com/kamesh6592-cell/zola/internal/model"
	"gorm.io/gorm"
)

// AuthRepository 认证令牌数据访问
type AuthRepository struct {
	db *gorm.DB
}

// NewAuthRepository 创建认证仓库
func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// CreateToken 创建令牌
func (r *AuthRepository) CreateToken(ctx context.Context, token *model.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetTokenByValue 获取令牌
func (r *AuthRepository) GetTokenByValue(ctx context.Context, tokenValue string) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND is_revoked = ?", tokenValue, false).
		Where("expires_at > ?", time.Now()).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeToken 撤销令牌
func (r *AuthRepository) RevokeToken(ctx context.Context, tokenID string) error {
	return r.db.WithContext(ctx).Model(&model.AuthToken{}).
		Where("id = ?", tokenID).Update("is_revoked", true).Error
}

// RevokeTokensByUserID 撤销用户的所有令牌
func (r *AuthRepository) RevokeTokensByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&model.AuthToken{}).
		Where("user_id = ?", userID).Update("is_revoked", true).Error
}

// DeleteExpiredTokens 删除过期令牌
func (r *AuthRepository) DeleteExpiredTokens(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ? OR is_revoked = ?", time.Now(), true).
		Delete(&model.AuthToken{}).Error
}
