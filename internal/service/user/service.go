// Package user 维护账号行（profile）
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kamesh6592-cell/zola/internal/model"
	"github.com/kamesh6592-cell/zola/internal/repository"
)

// ProfileStore 资料维护所需的存储接口
type ProfileStore interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}

// Service 用户资料服务
type Service struct {
	store ProfileStore
}

// NewService 创建用户资料服务
func NewService(store ProfileStore) *Service {
	return &Service{store: store}
}

// EnsureProfile 幂等地为认证主体创建账号行
// 认证完成与行落库之间存在窗口期，该接口是触发器失败时的兜底，
// 已存在时原样返回现有行
func (s *Service) EnsureProfile(ctx context.Context, subjectID, email, displayName string) (*model.User, error) {
	existing, err := s.store.GetUserByID(ctx, subjectID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if displayName == "" && email != "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	now := time.Now()
	u := &model.User{
		ID:           subjectID,
		Email:        email,
		DisplayName:  displayName,
		Anonymous:    false,
		LastActiveAt: &now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		// 并发创建时触发器可能已经插入了该行
		if again, getErr := s.store.GetUserByID(ctx, subjectID); getErr == nil {
			return again, nil
		}
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}
	return u, nil
}

// GetProfile 获取账号行
func (s *Service) GetProfile(ctx context.Context, id string) (*model.User, error) {
	return s.store.GetUserByID(ctx, id)
}
