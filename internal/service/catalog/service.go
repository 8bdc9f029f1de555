// Package catalog 维护模型目录
package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/kamesh6592-cell/zola/internal/model"
	"github.com/kamesh6592-cell/zola/internal/repository"
)

// Service 模型目录服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建模型目录服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// ListModels 列出可用模型
func (s *Service) ListModels(ctx context.Context) ([]*model.AIModel, error) {
	return s.repo.Model.ListEnabledModels(ctx)
}

// IsProModel 判断模型是否计入 pro 配额
func (s *Service) IsProModel(ctx context.Context, id string) (bool, error) {
	return s.repo.Model.IsProModel(ctx, id)
}

// defaultModels 目录为空时写入的初始条目
var defaultModels = []*model.AIModel{
	{ID: "llama-3.3-70b-versatile", Name: "Llama 3.3 70B", Provider: "groq", Pro: false, Enabled: true},
	{ID: "llama-3.1-8b-instant", Name: "Llama 3.1 8B", Provider: "groq", Pro: false, Enabled: true},
	{ID: "deepseek-r1-distill-llama-70b", Name: "DeepSeek R1 Distill 70B", Provider: "groq", Pro: true, Enabled: true},
	{ID: "qwen-qwq-32b", Name: "Qwen QwQ 32B", Provider: "groq", Pro: true, Enabled: true},
}

// Seed 写入初始模型条目（幂等）
func (s *Service) Seed(ctx context.Context) error {
	existing, err := s.repo.Model.ListEnabledModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, m := range defaultModels {
		if err := s.repo.Model.UpsertModel(ctx, m); err != nil {
			return fmt.Errorf("failed to seed model %s: %w", m.ID, err)
		}
	}
	log.Printf("seeded %d models", len(defaultModels))
	return nil
}
