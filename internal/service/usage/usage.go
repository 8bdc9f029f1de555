// Package usage 读取每日消息用量并给出配额判定
package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kamesh6592-cell/zola/internal/model"
	"github.com/kamesh6592-cell/zola/internal/repository"
	"github.com/kamesh6592-cell/zola/internal/service/identity"
)

var (
	// ErrRead 已校验的身份在存储中查不到用量记录，属内部一致性故障
	ErrRead = errors.New("usage record missing for validated identity")
	// ErrStoreUnavailable 用量存储不可达
	ErrStoreUnavailable = errors.New("usage store unavailable")
)

// Window 一个身份在一个自然日内的用量窗口
type Window struct {
	DailyCount    int
	DailyProCount int
	ResetAt       *time.Time
}

// Stale 窗口是否已过期
// 过期窗口中的计数在读路径上视为零，持久化的清零发生在写路径
func (w Window) Stale(now time.Time) bool {
	return w.ResetAt == nil || !w.ResetAt.After(now)
}

// LedgerStore 用量读取所需的存储接口
type LedgerStore interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// Reader 用量读取器
type Reader struct {
	store LedgerStore
	now   func() time.Time
}

// NewReader 创建用量读取器
func NewReader(store LedgerStore) *Reader {
	return &Reader{store: store, now: time.Now}
}

// Read 读取身份的当日用量窗口
// 游客的权威计数在客户端本地，这里返回零窗口且不查库
func (r *Reader) Read(ctx context.Context, ident *identity.Identity) (Window, error) {
	if !ident.Authenticated {
		return Window{}, nil
	}

	user, err := r.store.GetUserByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// 身份解析器刚确认过该行存在
			return Window{}, fmt.Errorf("%w: user %s", ErrRead, ident.ID)
		}
		return Window{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	w := Window{
		DailyCount:    user.DailyMessageCount,
		DailyProCount: user.DailyProMessageCount,
		ResetAt:       user.DailyReset,
	}
	if w.Stale(r.now()) {
		return Window{ResetAt: w.ResetAt}, nil
	}
	return w, nil
}
