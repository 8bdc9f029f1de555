package repository

import (
	"context"
	"errors"

	"github.com/kamesh6592-cell/zola/internal/model"
	"gorm.io/gorm"
)

// ErrChatNotFound 会话不存在
var ErrChatNotFound = errors.New("chat not found")

// ChatRepository 聊天数据访问
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建聊天仓库
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateChat 创建会话
func (r *ChatRepository) CreateChat(ctx context.Context, chat *model.Chat) error {
	return r.db.WithContext(ctx).Create(chat).Error
}

// GetChatByID 获取会话
func (r *ChatRepository) GetChatByID(ctx context.Context, id string) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// ListChats 列出用户的会话
func (r *ChatRepository) ListChats(ctx context.Context, userID string, offset, limit int) ([]*model.Chat, error) {
	var chats []*model.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&chats).Error
	return chats, err
}

// UpdateChat 更新会话
func (r *ChatRepository) UpdateChat(ctx context.Context, chat *model.Chat) error {
	return r.db.WithContext(ctx).Save(chat).Error
}

// DeleteChat 删除会话及其消息
func (r *ChatRepository) DeleteChat(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Message{}, "chat_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Chat{}, "id = ?", id).Error
	})
}

// CreateMessage 创建消息
func (r *ChatRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetMessagesByChatID 获取会话消息
func (r *ChatRepository) GetMessagesByChatID(ctx context.Context, chatID string) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
