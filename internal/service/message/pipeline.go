// Package message 实现消息发送的准入管道
// 阶段严格按 身份 → 用量 → 配额 → 会话 顺序执行，任一阶段可短路
package message

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kamesh6592-cell/zola/internal/config"
	"github.com/kamesh6592-cell/zola/internal/model"
	"github.com/kamesh6592-cell/zola/internal/service/chatsession"
	"github.com/kamesh6592-cell/zola/internal/service/identity"
	"github.com/kamesh6592-cell/zola/internal/service/usage"
)

// CounterStore 计数写入接口
// 递增在存储层原子完成，窗口过期时由写路径负责清零
type CounterStore interface {
	IncrementDailyCounts(ctx context.Context, id string, proModel bool) error
}

// ProClassifier 判断所选模型是否计入 pro 配额
type ProClassifier interface {
	IsProModel(ctx context.Context, id string) (bool, error)
}

// Transcript 消息持久化接口
type Transcript interface {
	AppendMessage(ctx context.Context, chatID, userID, role, content, modelID string) (*model.Message, error)
}

// Service 消息发送服务
type Service struct {
	resolver *identity.Resolver
	reader   *usage.Reader
	sessions *chatsession.Resolver
	chats    Transcript
	models   ProClassifier
	counters CounterStore
	quota    config.QuotaConfig
	sink     usage.Sink
}

// NewService 创建消息发送服务
func NewService(
	resolver *identity.Resolver,
	reader *usage.Reader,
	sessions *chatsession.Resolver,
	chats Transcript,
	models ProClassifier,
	counters CounterStore,
	quota config.QuotaConfig,
	sink usage.Sink,
) *Service {
	return &Service{
		resolver: resolver,
		reader:   reader,
		sessions: sessions,
		chats:    chats,
		models:   models,
		counters: counters,
		quota:    quota,
		sink:     sink,
	}
}

// SendRequest 消息发送请求
type SendRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	ChatID       string `json:"chat_id"`
	Model        string `json:"model" binding:"required"`
	Content      string `json:"content" binding:"required"`
	SystemPrompt string `json:"system_prompt"`
	// GuestCount 游客由客户端自报的当日计数，登录用户忽略
	GuestCount int `json:"guest_count"`
}

// SendResult 消息发送结果
type SendResult struct {
	ChatID    string         `json:"chat_id,omitempty"`
	MessageID string         `json:"message_id,omitempty"`
	Decision  usage.Decision `json:"decision"`
}

// Send 执行一次消息发送的准入判定与会话解析
// 存储故障按可用性优先原则放行（fail open），只有明确的配额拒绝会拦截发送
func (s *Service) Send(ctx context.Context, authCtx identity.AuthContext, req *SendRequest) (*SendResult, error) {
	ident, failOpen, err := s.resolveIdentity(ctx, authCtx, req.UserID)
	if err != nil {
		return nil, err
	}

	window := s.readWindow(ctx, ident, req.GuestCount, &failOpen)

	proModel, err := s.models.IsProModel(ctx, req.Model)
	if err != nil {
		log.Printf("model classification failed for %s: %v", req.Model, err)
		proModel = false
	}

	decision := usage.Evaluate(window, s.limitsFor(ident), usage.Input{
		Authenticated: ident.Authenticated,
		ProModel:      proModel,
	})
	s.emit(ctx, decision.Advisories)

	if !decision.Allowed {
		return &SendResult{Decision: decision}, nil
	}

	chatID, err := s.sessions.Resolve(ctx, ident, req.ChatID, req.Model, req.Content)
	if err != nil {
		return nil, err
	}

	msg, err := s.chats.AppendMessage(ctx, chatID, ident.ID, "user", req.Content, req.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	// 游客计数在客户端维护；fail open 时身份未经存储确认，跳过计数
	if ident.Authenticated && !failOpen {
		if err := s.counters.IncrementDailyCounts(ctx, ident.ID, proModel); err != nil {
			log.Printf("failed to increment daily counts for %s: %v", ident.ID, err)
		}
	}

	return &SendResult{
		ChatID:    chatID,
		MessageID: msg.ID,
		Decision:  decision,
	}, nil
}

// Preview 只读的配额预览，不递增计数，不创建会话
func (s *Service) Preview(ctx context.Context, authCtx identity.AuthContext, userID string, guestCount int) (*usage.Decision, error) {
	ident, failOpen, err := s.resolveIdentity(ctx, authCtx, userID)
	if err != nil {
		return nil, err
	}

	window := s.readWindow(ctx, ident, guestCount, &failOpen)
	decision := usage.Evaluate(window, s.limitsFor(ident), usage.Input{
		Authenticated: ident.Authenticated,
	})
	return &decision, nil
}

// resolveIdentity 身份校验
// 存储不可达时记录日志并放行，返回未经存储确认的身份
func (s *Service) resolveIdentity(ctx context.Context, authCtx identity.AuthContext, claimedID string) (*identity.Identity, bool, error) {
	ident, err := s.resolver.Resolve(ctx, claimedID, authCtx)
	if err == nil {
		return ident, false, nil
	}

	if errors.Is(err, identity.ErrStoreUnavailable) {
		log.Printf("identity check degraded for %s: %v", claimedID, err)
		return &identity.Identity{
			ID:            claimedID,
			Email:         authCtx.Email,
			Authenticated: authCtx.Authenticated,
		}, true, nil
	}

	// ErrIdentityMismatch 与 ErrProfileNotReady 不放行
	return nil, false, err
}

// readWindow 读取用量窗口
// 游客用客户端自报计数构造窗口；读失败记录日志并按零窗口放行
func (s *Service) readWindow(ctx context.Context, ident *identity.Identity, guestCount int, failOpen *bool) usage.Window {
	if !ident.Authenticated {
		if guestCount < 0 {
			guestCount = 0
		}
		return usage.Window{DailyCount: guestCount}
	}

	window, err := s.reader.Read(ctx, ident)
	if err != nil {
		log.Printf("usage read degraded for %s: %v", ident.ID, err)
		*failOpen = true
		return usage.Window{}
	}
	return window
}

// limitsFor 按身份层级选择限额
func (s *Service) limitsFor(ident *identity.Identity) usage.Limits {
	limit := s.quota.DailyLimitGuest
	if ident.Authenticated {
		limit = s.quota.DailyLimitAuth
	}
	return usage.Limits{
		DailyLimit:     limit,
		DailyLimitPro:  s.quota.DailyLimitPro,
		AlertThreshold: s.quota.AlertThreshold,
	}
}

func (s *Service) emit(ctx context.Context, advisories []usage.Advisory) {
	if s.sink == nil {
		return
	}
	for _, a := range advisories {
		s.sink.Notify(ctx, a)
	}
}

var _ ProClassifier = (*noopClassifier)(nil)

// noopClassifier 模型目录不可用时的降级分类器，一切模型按非 pro 处理
type noopClassifier struct{}

// NewNoopClassifier 创建降级分类器
func NewNoopClassifier() ProClassifier {
	return &noopClassifier{}
}

func (noopClassifier) IsProModel(ctx context.Context, id string) (bool, error) {
	return false, nil
}
