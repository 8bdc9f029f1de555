package handler

import (
	"github.com/kamesh6592-cell/zola/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth    *AuthHandler
	Chat    *ChatHandler
	Message *MessageHandler
	User    *UserHandler
	Model   *ModelHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc),
		Chat:    NewChatHandler(svc),
		Message: NewMessageHandler(svc),
		User:    NewUserHandler(svc),
		Model:   NewModelHandler(svc),
	}
}
