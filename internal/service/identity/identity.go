// Package identity 校验消息发送者的身份
// 登录用户的数据行由认证完成后的异步触发器写入，此处用有界重试
// 吸收"已认证但行尚未落库"的竞态
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrIdentityMismatch 声称的用户 ID 与认证主体不一致，不可重试
	ErrIdentityMismatch = errors.New("user id does not match authenticated subject")
	// ErrProfileNotReady 重试耗尽后用户行仍不存在，调用方应提示稍后重试
	ErrProfileNotReady = errors.New("user profile not ready")
	// ErrStoreUnavailable 账号存储不可达
	ErrStoreUnavailable = errors.New("account store unavailable")
)

// AuthContext 当前调用者的认证上下文，由认证中间件提供
type AuthContext struct {
	SubjectID     string
	Email         string
	Authenticated bool
}

// Identity 校验通过的身份
type Identity struct {
	ID            string
	Email         string
	Authenticated bool
}

// AccountStore 账号存在性检查所需的存储接口
type AccountStore interface {
	ExistsForAuthSubject(ctx context.Context, id string) (bool, error)
}

// Resolver 身份解析器
type Resolver struct {
	store    AccountStore
	attempts int
	delay    time.Duration
}

// NewResolver 创建身份解析器
// attempts 为存在性检查的最大尝试次数，delay 为相邻尝试的固定间隔
func NewResolver(store AccountStore, attempts int, delay time.Duration) *Resolver {
	if attempts <= 0 {
		attempts = 3
	}
	return &Resolver{store: store, attempts: attempts, delay: delay}
}

// Resolve 校验 claimedID 并返回身份
// 游客不查库，按自述 ID 接受；登录用户先比对认证主体，再确认用户行存在
func (r *Resolver) Resolve(ctx context.Context, claimedID string, authCtx AuthContext) (*Identity, error) {
	if claimedID == "" {
		return nil, fmt.Errorf("claimed user id is empty: %w", ErrIdentityMismatch)
	}

	if !authCtx.Authenticated {
		return &Identity{ID: claimedID, Authenticated: false}, nil
	}

	if authCtx.SubjectID != claimedID {
		return nil, ErrIdentityMismatch
	}

	// 用户行由异步触发器创建，刚完成认证时可能还不存在
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, r.delay); err != nil {
				return nil, err
			}
		}

		exists, err := r.store.ExistsForAuthSubject(ctx, claimedID)
		if err != nil {
			lastErr = err
			continue
		}
		// 以最后一次完成的查询为准，前面的瞬时错误不再作数
		lastErr = nil
		if exists {
			return &Identity{ID: claimedID, Email: authCtx.Email, Authenticated: true}, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, lastErr)
	}
	return nil, ErrProfileNotReady
}

// sleepCtx 可被 ctx 取消的休眠
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
