package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kamesh6592-cell/zola/internal/middleware"
	"github.com/kamesh6592-cell/zola/internal/repository"
	"github.com/kamesh6592-cell/zola/internal/service"
)

// UserHandler 用户资料处理器
type UserHandler struct {
	svc *service.Services
}

// NewUserHandler 创建用户资料处理器
func NewUserHandler(svc *service.Services) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateProfile 为当前认证主体幂等地创建账号行
// 正常情况下该行由认证完成后的触发器写入；此接口是触发器失败时的兜底
func (h *UserHandler) CreateProfile(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	profile, err := h.svc.User.EnsureProfile(c.Request.Context(), user.ID, user.Email, user.DisplayName)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, profile)
}

// GetProfile 获取当前用户的账号行
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	profile, err := h.svc.User.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			NotFound(c, "Profile not found")
			return
		}
		Error(c, err)
		return
	}

	Success(c, profile)
}
