package chat

import (
	"context"
	"fmt"

	"github.com/kamesh6592-cell/zola/internal/model"
	"github.com/kamesh6592-cell/zola/internal/repository"
	"github.com/google/uuid"
)

// Service 聊天服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建聊天服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateChatRequest 创建会话请求
type CreateChatRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	Title        string `json:"title"`
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt"`
}

// maxTitleRunes 会话标题的最大长度
const maxTitleRunes = 100

// truncateTitle 按 rune 边界截断标题，避免把多字节字符切坏
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleRunes {
		return title
	}
	return string(runes[:maxTitleRunes])
}

// CreateChat 创建会话
func (s *Service) CreateChat(ctx context.Context, req *CreateChatRequest) (*model.Chat, error) {
	title := truncateTitle(req.Title)

	chat := &model.Chat{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		Title:        title,
		Model:        req.Model,
		SystemPrompt: req.SystemPrompt,
	}

	if err := s.repo.Chat.CreateChat(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	return chat, nil
}

// CreateSession 实现 chatsession.Creator
// 游客会话同样落库；游客与登录用户的区别由配额层处理
func (s *Service) CreateSession(ctx context.Context, ownerID, title, modelID string, authenticated bool, systemPrompt string) (string, error) {
	chat, err := s.CreateChat(ctx, &CreateChatRequest{
		UserID:       ownerID,
		Title:        title,
		Model:        modelID,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return "", err
	}
	return chat.ID, nil
}

// GetChat 获取会话
func (s *Service) GetChat(ctx context.Context, id string) (*model.Chat, error) {
	return s.repo.Chat.GetChatByID(ctx, id)
}

// ListChatsRequest 列出会话请求
type ListChatsRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page"`
	Size   int    `json:"size"`
}

// ListChats 列出会话
func (s *Service) ListChats(ctx context.Context, req *ListChatsRequest) ([]*model.Chat, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Size <= 0 || req.Size > 100 {
		req.Size = 20
	}

	offset := (req.Page - 1) * req.Size
	chats, err := s.repo.Chat.ListChats(ctx, req.UserID, offset, req.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

// DeleteChat 删除会话
func (s *Service) DeleteChat(ctx context.Context, id string) error {
	if err := s.repo.Chat.DeleteChat(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	return nil
}

// AppendMessage 向会话追加一条消息
func (s *Service) AppendMessage(ctx context.Context, chatID, userID, role, content, modelID string) (*model.Message, error) {
	msg := &model.Message{
		ID:      uuid.New().String(),
		ChatID:  chatID,
		UserID:  userID,
		Role:    role,
		Content: content,
		Model:   modelID,
	}

	if err := s.repo.Chat.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

// GetMessages 获取会话消息
func (s *Service) GetMessages(ctx context.Context, chatID string) ([]*model.Message, error) {
	return s.repo.Chat.GetMessagesByChatID(ctx, chatID)
}
