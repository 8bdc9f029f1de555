// Package identity 校验消息发送者的身份
package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kamesh6592-cell/zola/internal/testutil"
)

// ========== mockAccountStore ==========

type mockAccountStore struct {
	calls   int
	results []bool
	errs    []error
}

func (m *mockAccountStore) ExistsForAuthSubject(ctx context.Context, id string) (bool, error) {
	idx := m.calls
	m.calls++
	if idx >= len(m.results) {
		idx = len(m.results) - 1
	}
	var err error
	if idx < len(m.errs) {
		err = m.errs[idx]
	}
	return m.results[idx], err
}

// ========== Resolve 测试 ==========

func TestResolver_Resolve_Guest(t *testing.T) {
	store := &mockAccountStore{results: []bool{false}}
	r := NewResolver(store, 3, 0)

	ident, err := r.Resolve(context.Background(), "guest-123", AuthContext{Authenticated: false})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ident.ID != "guest-123" || ident.Authenticated {
		t.Errorf("Resolve() = %+v, want guest identity guest-123", ident)
	}
	// 游客路径不得触发存储查询
	if store.calls != 0 {
		t.Errorf("store calls = %d, want 0", store.calls)
	}
}

func TestResolver_Resolve_EmptyClaimedID(t *testing.T) {
	r := NewResolver(&mockAccountStore{results: []bool{true}}, 3, 0)

	_, err := r.Resolve(context.Background(), "", AuthContext{Authenticated: true, SubjectID: "u1"})
	if !errors.Is(err, ErrIdentityMismatch) {
		t.Errorf("Resolve() error = %v, want ErrIdentityMismatch", err)
	}
}

func TestResolver_Resolve_SubjectMismatch(t *testing.T) {
	store := &mockAccountStore{results: []bool{true}}
	r := NewResolver(store, 3, 0)

	_, err := r.Resolve(context.Background(), "u2", AuthContext{Authenticated: true, SubjectID: "u1"})
	if !errors.Is(err, ErrIdentityMismatch) {
		t.Errorf("Resolve() error = %v, want ErrIdentityMismatch", err)
	}
	// 主体不一致时不查库
	if store.calls != 0 {
		t.Errorf("store calls = %d, want 0", store.calls)
	}
}

func TestResolver_Resolve_ProfileAppearsOnRetry(t *testing.T) {
	tests := []struct {
		name      string
		results   []bool
		wantCalls int
	}{
		{name: "exists on first attempt", results: []bool{true}, wantCalls: 1},
		{name: "exists on second attempt", results: []bool{false, true}, wantCalls: 2},
		{name: "exists on last attempt", results: []bool{false, false, true}, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockAccountStore{results: tt.results}
			r := NewResolver(store, 3, time.Millisecond)

			ident, err := r.Resolve(context.Background(), "u1", AuthContext{
				Authenticated: true,
				SubjectID:     "u1",
				Email:         "u1@example.com",
			})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !ident.Authenticated || ident.ID != "u1" || ident.Email != "u1@example.com" {
				t.Errorf("Resolve() = %+v, want authenticated u1", ident)
			}
			if store.calls != tt.wantCalls {
				t.Errorf("store calls = %d, want %d", store.calls, tt.wantCalls)
			}
		})
	}
}

func TestResolver_Resolve_ProfileNeverAppears(t *testing.T) {
	store := &mockAccountStore{results: []bool{false}}
	r := NewResolver(store, 3, time.Millisecond)

	_, err := r.Resolve(context.Background(), "u1", AuthContext{Authenticated: true, SubjectID: "u1"})
	if !errors.Is(err, ErrProfileNotReady) {
		t.Errorf("Resolve() error = %v, want ErrProfileNotReady", err)
	}
	if store.calls != 3 {
		t.Errorf("store calls = %d, want 3", store.calls)
	}
}

func TestResolver_Resolve_StoreUnavailable(t *testing.T) {
	boom := errors.New("connection refused")
	store := &mockAccountStore{
		results: []bool{false, false, false},
		errs:    []error{boom, boom, boom},
	}
	r := NewResolver(store, 3, time.Millisecond)

	_, err := r.Resolve(context.Background(), "u1", AuthContext{Authenticated: true, SubjectID: "u1"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Resolve() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestResolver_Resolve_TransientErrorThenExists(t *testing.T) {
	// 前一次查询报错不终止重试，后续成功即通过
	store := &mockAccountStore{
		results: []bool{false, true},
		errs:    []error{errors.New("timeout"), nil},
	}
	r := NewResolver(store, 3, time.Millisecond)

	ident, err := r.Resolve(context.Background(), "u1", AuthContext{Authenticated: true, SubjectID: "u1"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !ident.Authenticated {
		t.Errorf("Resolve() = %+v, want authenticated identity", ident)
	}
}

func TestResolver_Resolve_TransientErrorThenNotFound(t *testing.T) {
	// 后续查询正常完成且行不存在时，按行未就绪处理而不是存储不可达
	store := &mockAccountStore{
		results: []bool{false, false, false},
		errs:    []error{errors.New("timeout"), nil, nil},
	}
	r := NewResolver(store, 3, time.Millisecond)

	_, err := r.Resolve(context.Background(), "u1", AuthContext{Authenticated: true, SubjectID: "u1"})
	if !errors.Is(err, ErrProfileNotReady) {
		t.Errorf("Resolve() error = %v, want ErrProfileNotReady", err)
	}
}

func TestResolver_Resolve_ContextCanceled(t *testing.T) {
	store := &mockAccountStore{results: []bool{false}}
	r := NewResolver(store, 3, 100*time.Millisecond)

	_, err := r.Resolve(testutil.CanceledContext(), "u1", AuthContext{Authenticated: true, SubjectID: "u1"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want context.Canceled", err)
	}
	// 首次查询后在休眠处被取消
	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1", store.calls)
	}
}

func TestNewResolver_DefaultAttempts(t *testing.T) {
	store := &mockAccountStore{results: []bool{false}}
	r := NewResolver(store, 0, 0)

	_, err := r.Resolve(context.Background(), "u1", AuthContext{Authenticated: true, SubjectID: "u1"})
	if !errors.Is(err, ErrProfileNotReady) {
		t.Fatalf("Resolve() error = %v, want ErrProfileNotReady", err)
	}
	if store.calls != 3 {
		t.Errorf("store calls = %d, want default 3", store.calls)
	}
}
