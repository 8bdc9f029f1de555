// Package user 维护账号行（profile）
package user

import (
	"context"
	"errors"
	"testing"

	"github.com/kamesh6592-cell/zola/internal/model"
	"github.com/kamesh6592-cell/zola/internal/repository"
	"github.com/kamesh6592-cell/zola/internal/testutil"
)

// ========== mockProfileStore ==========

type mockProfileStore struct {
	users      map[string]*model.User
	createErr  error
	getErr     error
	getCalls   int
	createWins bool
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{users: make(map[string]*model.User)}
}

func (m *mockProfileStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockProfileStore) CreateUser(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		// 模拟并发插入：创建失败后该行出现
		if m.createWins {
			m.users[user.ID] = &model.User{ID: user.ID, Email: user.Email}
		}
		return m.createErr
	}
	m.users[user.ID] = user
	return nil
}

// ========== EnsureProfile 测试 ==========

func TestService_EnsureProfile_CreatesRow(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	store := newMockProfileStore()
	s := NewService(store)

	u, err := s.EnsureProfile(context.Background(), "u1", "alice@example.com", "")
	assert.NoError(err)
	assert.Equal("u1", u.ID)
	assert.False(u.Anonymous)
	// 未提供显示名时取邮箱前缀
	assert.Equal("alice", u.DisplayName)
}

func TestService_EnsureProfile_Idempotent(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	store := newMockProfileStore()
	store.users["u1"] = &model.User{ID: "u1", Email: "alice@example.com", DisplayName: "Alice"}
	s := NewService(store)

	u, err := s.EnsureProfile(context.Background(), "u1", "alice@example.com", "Someone Else")
	assert.NoError(err)
	// 已存在的行原样返回，不覆盖
	assert.Equal("Alice", u.DisplayName)
}

func TestService_EnsureProfile_ConcurrentCreate(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	store := newMockProfileStore()
	store.createErr = errors.New("duplicate key")
	store.createWins = true
	s := NewService(store)

	u, err := s.EnsureProfile(context.Background(), "u1", "alice@example.com", "")
	assert.NoError(err)
	assert.Equal("u1", u.ID)
}

func TestService_EnsureProfile_CreateFailsHard(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	store := newMockProfileStore()
	store.createErr = errors.New("connection refused")
	s := NewService(store)

	_, err := s.EnsureProfile(context.Background(), "u1", "alice@example.com", "")
	assert.Error(err)
}

func TestService_EnsureProfile_StoreError(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	store := newMockProfileStore()
	store.getErr = errors.New("connection refused")
	s := NewService(store)

	_, err := s.EnsureProfile(context.Background(), "u1", "alice@example.com", "")
	assert.Error(err)
}
