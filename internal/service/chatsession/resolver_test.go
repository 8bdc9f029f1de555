// Package chatsession 解析或创建一次对话对应的会话 id
package chatsession

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kamesh6592-cell/zola/internal/service/identity"
	"github.com/kamesh6592-cell/zola/internal/testutil"
)

// ========== mockCreator ==========

type mockCreator struct {
	calls int
	err   error
}

func (m *mockCreator) CreateSession(ctx context.Context, ownerID, title, model string, authenticated bool, systemPrompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return fmt.Sprintf("chat-%d", m.calls), nil
}

// ========== failingCache ==========

type failingCache struct {
	getErr error
	setErr error
	stored map[string]string
}

func (c *failingCache) Get(ctx context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.stored[key], nil
}

func (c *failingCache) Set(ctx context.Context, key, id string) error {
	if c.setErr != nil {
		return c.setErr
	}
	if c.stored == nil {
		c.stored = make(map[string]string)
	}
	c.stored[key] = id
	return nil
}

// ========== Resolve 测试 ==========

func TestResolver_Resolve_ExistingID(t *testing.T) {
	creator := &mockCreator{}
	r := NewResolver(creator, NewMemoryGuestCache())

	for _, ident := range []*identity.Identity{
		{ID: "u1", Authenticated: true},
		{ID: "g1", Authenticated: false},
	} {
		id, err := r.Resolve(context.Background(), ident, "chat-existing", "gpt", "hello")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if id != "chat-existing" {
			t.Errorf("Resolve() = %s, want chat-existing", id)
		}
	}
	// 既有 id 原样返回，不触发创建
	if creator.calls != 0 {
		t.Errorf("creator calls = %d, want 0", creator.calls)
	}
}

func TestResolver_Resolve_AuthAlwaysCreates(t *testing.T) {
	creator := &mockCreator{}
	r := NewResolver(creator, NewMemoryGuestCache())
	ident := &identity.Identity{ID: "u1", Authenticated: true}

	first, err := r.Resolve(context.Background(), ident, "", "gpt", "hello")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := r.Resolve(context.Background(), ident, "", "gpt", "hello")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	// 登录用户每次开启新会话
	if first == second {
		t.Errorf("Resolve() returned same id %s twice", first)
	}
	if creator.calls != 2 {
		t.Errorf("creator calls = %d, want 2", creator.calls)
	}
}

func TestResolver_Resolve_GuestCreatesOnce(t *testing.T) {
	creator := &mockCreator{}
	r := NewResolver(creator, NewMemoryGuestCache())
	ident := &identity.Identity{ID: "g1", Authenticated: false}

	first, err := r.Resolve(context.Background(), ident, "", "gpt", "hello")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := r.Resolve(context.Background(), ident, "", "gpt", "again")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	// 游客会话恰好创建一次，后续命中缓存
	if first != second {
		t.Errorf("Resolve() = %s then %s, want stable id", first, second)
	}
	if creator.calls != 1 {
		t.Errorf("creator calls = %d, want 1", creator.calls)
	}
}

func TestResolver_Resolve_GuestsIsolated(t *testing.T) {
	creator := &mockCreator{}
	r := NewResolver(creator, NewMemoryGuestCache())

	a, _ := r.Resolve(context.Background(), &identity.Identity{ID: "g1"}, "", "gpt", "hi")
	b, _ := r.Resolve(context.Background(), &identity.Identity{ID: "g2"}, "", "gpt", "hi")
	if a == b {
		t.Errorf("different guests share chat id %s", a)
	}
}

func TestResolver_Resolve_CreatorError(t *testing.T) {
	boom := errors.New("insert failed")
	creator := &mockCreator{err: boom}
	r := NewResolver(creator, NewMemoryGuestCache())

	tests := []struct {
		name  string
		ident *identity.Identity
	}{
		{name: "auth", ident: &identity.Identity{ID: "u1", Authenticated: true}},
		{name: "guest", ident: &identity.Identity{ID: "g1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := testutil.NewAssertHelper(t)
			_, err := r.Resolve(context.Background(), tt.ident, "", "gpt", "hi")
			assert.ErrorIs(err, ErrSessionCreateFailed)
			// 协作方的原始错误保留在消息里
			assert.ErrorContains(err, "insert failed")
		})
	}
}

func TestResolver_Resolve_CacheGetFailureFallsBack(t *testing.T) {
	creator := &mockCreator{}
	cache := &failingCache{getErr: errors.New("redis down")}
	r := NewResolver(creator, cache)

	assert := testutil.NewAssertHelper(t)
	id, err := r.Resolve(context.Background(), &identity.Identity{ID: "g1"}, "", "gpt", "hi")
	assert.NoError(err)
	assert.NotEmpty(id)
	// 缓存故障按未命中处理，仍创建会话
	if creator.calls != 1 {
		t.Errorf("creator calls = %d, want 1", creator.calls)
	}
}

func TestResolver_Resolve_CacheSetFailureIsNonFatal(t *testing.T) {
	creator := &mockCreator{}
	cache := &failingCache{setErr: errors.New("redis down")}
	r := NewResolver(creator, cache)

	assert := testutil.NewAssertHelper(t)
	id, err := r.Resolve(context.Background(), &identity.Identity{ID: "g1"}, "", "gpt", "hi")
	assert.NoError(err)
	assert.NotEmpty(id)
}

// ========== MemoryGuestCache 测试 ==========

func TestMemoryGuestCache(t *testing.T) {
	c := NewMemoryGuestCache()
	ctx := context.Background()

	got, err := c.Get(ctx, "guest:chat:g1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() on empty cache = %s, want empty", got)
	}

	if err := c.Set(ctx, "guest:chat:g1", "chat-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err = c.Get(ctx, "guest:chat:g1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "chat-1" {
		t.Errorf("Get() = %s, want chat-1", got)
	}
}
