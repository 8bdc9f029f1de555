package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kamesh6592-cell/zola/internal/repository"
	"github.com/kamesh6592-cell/zola/internal/service"
	"github.com/kamesh6592-cell/zola/internal/service/chat"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// CreateChat 创建会话
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req chat.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	created, err := h.svc.Chat.CreateChat(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, created)
}

// GetChat 获取会话
func (h *ChatHandler) GetChat(c *gin.Context) {
	id := c.Param("id")

	found, err := h.svc.Chat.GetChat(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			NotFound(c, "Chat not found")
			return
		}
		Error(c, err)
		return
	}

	Success(c, found)
}

// ListChats 列出会话
func (h *ChatHandler) ListChats(c *gin.Context) {
	var req chat.ListChatsRequest
	req.UserID = c.Query("userId")
	if req.UserID == "" {
		BadRequest(c, "Missing userId")
		return
	}
	req.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	req.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	chats, err := h.svc.Chat.ListChats(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, chats)
}

// DeleteChat 删除会话
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Chat.DeleteChat(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	Success(c, nil)
}

// GetMessages 获取会话消息
func (h *ChatHandler) GetMessages(c *gin.Context) {
	id := c.Param("id")

	messages, err := h.svc.Chat.GetMessages(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, messages)
}
