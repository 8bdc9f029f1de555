package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kamesh6592-cell/zola/internal/service"
)

// ModelHandler 模型目录处理器
type ModelHandler struct {
	svc *service.Services
}

// NewModelHandler 创建模型目录处理器
func NewModelHandler(svc *service.Services) *ModelHandler {
	return &ModelHandler{svc: svc}
}

// ListModels 列出可用模型
func (h *ModelHandler) ListModels(c *gin.Context) {
	models, err := h.svc.Catalog.ListModels(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, models)
}
