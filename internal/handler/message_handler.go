package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kamesh6592-cell/zola/internal/middleware"
	"github.com/kamesh6592-cell/zola/internal/service"
	"github.com/kamesh6592-cell/zola/internal/service/chatsession"
	"github.com/kamesh6592-cell/zola/internal/service/identity"
	"github.com/kamesh6592-cell/zola/internal/service/message"
)

// MessageHandler 消息发送处理器
type MessageHandler struct {
	svc *service.Services
}

// NewMessageHandler 创建消息发送处理器
func NewMessageHandler(svc *service.Services) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Send 发送一条消息
// 管道内完成身份校验、配额判定与会话解析；拒绝时区分软硬两种结果：
// 游客超限引导登录，登录用户超限提示次日再试
func (h *MessageHandler) Send(c *gin.Context) {
	var req message.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	authCtx := middleware.GetAuthContext(c)
	result, err := h.svc.Message.Send(c.Request.Context(), authCtx, &req)
	if err != nil {
		h.writeSendError(c, err)
		return
	}

	if !result.Decision.Allowed {
		if result.Decision.Soft {
			// 游客超限是建议性拒绝，不是终态错误
			c.JSON(403, gin.H{
				"code":     403,
				"msg":      "Daily limit reached. Login to continue chatting.",
				"decision": result.Decision,
			})
			return
		}
		c.JSON(403, gin.H{
			"code":     403,
			"msg":      "Daily message limit reached. Try again tomorrow.",
			"decision": result.Decision,
		})
		return
	}

	Success(c, result)
}

// writeSendError 把管道错误映射为面向用户的响应
func (h *MessageHandler) writeSendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrIdentityMismatch):
		Forbidden(c, "User ID does not match authenticated user")
	case errors.Is(err, identity.ErrProfileNotReady):
		ServiceUnavailable(c, "Your profile is still being set up. Please refresh and try again.")
	case errors.Is(err, chatsession.ErrSessionCreateFailed):
		InternalServerError(c, err.Error())
	default:
		Error(c, err)
	}
}

// RateLimits 只读配额预览
// 供客户端在发送前获取余量与提醒信号，不递增计数
func (h *MessageHandler) RateLimits(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		BadRequest(c, "Missing userId")
		return
	}

	guestCount, _ := strconv.Atoi(c.DefaultQuery("guestCount", "0"))

	authCtx := middleware.GetAuthContext(c)
	decision, err := h.svc.Message.Preview(c.Request.Context(), authCtx, userID, guestCount)
	if err != nil {
		h.writeSendError(c, err)
		return
	}

	Success(c, decision)
}
