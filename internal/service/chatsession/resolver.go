// Package chatsession 解析或创建一次对话对应的会话 id
package chatsession

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kamesh6592-cell/zola/internal/service/identity"
)

// ErrSessionCreateFailed 会话创建协作方失败，消息原样透出给用户
var ErrSessionCreateFailed = errors.New("failed to create chat session")

// Creator 会话创建协作方
// 重试策略（如有）由协作方自行负责，解析器不重试
type Creator interface {
	CreateSession(ctx context.Context, ownerID, title, model string, authenticated bool, systemPrompt string) (string, error)
}

// GuestCache 游客会话的本地缓存
// Get 未命中时返回空串
type GuestCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, id string) error
}

// Resolver 会话解析器
type Resolver struct {
	creator Creator
	cache   GuestCache
}

// NewResolver 创建会话解析器
func NewResolver(creator Creator, cache GuestCache) *Resolver {
	return &Resolver{creator: creator, cache: cache}
}

// guestChatKey 游客会话缓存使用的固定键
func guestChatKey(guestID string) string {
	return "guest:chat:" + guestID
}

// Resolve 返回既有会话 id 或恰好创建一次新会话
// 外部给定的 existingID 原样返回，热路径上不回查存储
func (r *Resolver) Resolve(ctx context.Context, ident *identity.Identity, existingID, model, title string) (string, error) {
	if existingID != "" {
		return existingID, nil
	}

	if !ident.Authenticated {
		return r.resolveGuest(ctx, ident, model, title)
	}

	// 登录用户每次都新建会话，后续导航由调用方负责
	id, err := r.creator.CreateSession(ctx, ident.ID, title, model, true, "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionCreateFailed, err)
	}
	return id, nil
}

// resolveGuest 游客路径：命中本地缓存则复用，否则创建并缓存
func (r *Resolver) resolveGuest(ctx context.Context, ident *identity.Identity, model, title string) (string, error) {
	key := guestChatKey(ident.ID)

	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		// 缓存故障按未命中处理
		log.Printf("guest cache get failed for %s: %v", key, err)
	}
	if cached != "" {
		return cached, nil
	}

	id, err := r.creator.CreateSession(ctx, ident.ID, title, model, false, "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionCreateFailed, err)
	}

	if err := r.cache.Set(ctx, key, id); err != nil {
		log.Printf("guest cache set failed for %s: %v", key, err)
	}
	return id, nil
}
