package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kamesh6592-cell/zola/internal/model"
	"gorm.io/gorm"
)

// ErrUserNotFound 用户不存在
var ErrUserNotFound = errors.New("user not found")

// UserRepository 用户数据访问
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser 创建用户
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID 获取用户
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 获取用户
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser 更新用户
func (r *UserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ExistsForAuthSubject 检查认证主体对应的用户行是否已存在
// 用户行由认证完成后的异步触发器写入，刚登录的用户可能暂时查不到
func (r *UserRepository) ExistsForAuthSubject(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND anonymous = ?", id, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementDailyCounts 原子递增每日消息计数
// 单条 UPDATE 完成窗口判断：窗口已过期则从 1 重新计数并推进 daily_reset，
// 否则在现有计数上加一。并发发送下不会丢失更新
func (r *UserRepository) IncrementDailyCounts(ctx context.Context, id string, proModel bool) error {
	now := time.Now().UTC()
	nextReset := now.Truncate(24 * time.Hour).Add(24 * time.Hour)

	updates := map[string]interface{}{
		"message_count":  gorm.Expr("message_count + 1"),
		"last_active_at": now,
		"daily_message_count": gorm.Expr(
			"CASE WHEN daily_reset IS NULL OR daily_reset <= ? THEN 1 ELSE daily_message_count + 1 END", now),
		"daily_pro_message_count": gorm.Expr(
			"CASE WHEN daily_reset IS NULL OR daily_reset <= ? THEN ? ELSE daily_pro_message_count + ? END",
			now, boolToCount(proModel), boolToCount(proModel)),
		"daily_reset": gorm.Expr(
			"CASE WHEN daily_reset IS NULL OR daily_reset <= ? THEN ? ELSE daily_reset END", now, nextReset),
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func boolToCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
