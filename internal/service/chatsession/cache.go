package chatsession

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// 游客会话缓存的过期时间，与游客浏览上下文的生命周期对齐
const guestCacheTTL = 7 * 24 * time.Hour

// RedisGuestCache 基于 Redis 的游客会话缓存
type RedisGuestCache struct {
	client *redis.Client
}

// NewRedisGuestCache 创建 Redis 游客缓存
func NewRedisGuestCache(client *redis.Client) *RedisGuestCache {
	return &RedisGuestCache{client: client}
}

// Get 读取缓存的会话 id，未命中返回空串
func (c *RedisGuestCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

// Set 写入会话 id
func (c *RedisGuestCache) Set(ctx context.Context, key, id string) error {
	return c.client.Set(ctx, key, id, guestCacheTTL).Err()
}

// MemoryGuestCache 进程内游客缓存，用于测试和无 Redis 的部署
type MemoryGuestCache struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryGuestCache 创建内存游客缓存
func NewMemoryGuestCache() *MemoryGuestCache {
	return &MemoryGuestCache{items: make(map[string]string)}
}

// Get 读取缓存的会话 id，未命中返回空串
func (c *MemoryGuestCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items[key], nil
}

// Set 写入会话 id
func (c *MemoryGuestCache) Set(ctx context.Context, key, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = id
	return nil
}
