package service

import (
	"github.com/redis/go-redis/v9"

	"github.com/kamesh6592-cell/zola/internal/config"
	"github.com/kamesh6592-cell/zola/internal/repository"
	"github.com/kamesh6592-cell/zola/internal/service/auth"
	"github.com/kamesh6592-cell/zola/internal/service/catalog"
	"github.com/kamesh6592-cell/zola/internal/service/chat"
	"github.com/kamesh6592-cell/zola/internal/service/chatsession"
	"github.com/kamesh6592-cell/zola/internal/service/identity"
	"github.com/kamesh6592-cell/zola/internal/service/message"
	"github.com/kamesh6592-cell/zola/internal/service/usage"
	"github.com/kamesh6592-cell/zola/internal/service/user"
)

// Services 服务集合
type Services struct {
	Auth    *auth.Service
	Chat    *chat.Service
	User    *user.Service
	Catalog *catalog.Service
	Message *message.Service

	Config *config.Config
}

// NewServices 创建所有服务
// 消息管道的各阶段在这里组装：身份解析 → 用量读取 → 配额判定 → 会话解析
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	chatSvc := chat.NewService(repo)
	catalogSvc := catalog.NewService(repo)

	resolver := identity.NewResolver(
		repo.User,
		cfg.Quota.ProfileCheckAttempts,
		cfg.Quota.ProfileCheckDelay(),
	)
	reader := usage.NewReader(repo.User)

	var guestCache chatsession.GuestCache
	if redisClient != nil {
		guestCache = chatsession.NewRedisGuestCache(redisClient)
	} else {
		guestCache = chatsession.NewMemoryGuestCache()
	}
	sessions := chatsession.NewResolver(chatSvc, guestCache)

	messageSvc := message.NewService(
		resolver,
		reader,
		sessions,
		chatSvc,
		catalogSvc,
		repo.User,
		cfg.Quota,
		usage.NewLogSink(),
	)

	return &Services{
		Auth:    auth.NewService(repo),
		Chat:    chatSvc,
		User:    user.NewService(repo.User),
		Catalog: catalogSvc,
		Message: messageSvc,

		Config: cfg,
	}, nil
}
