package repository

import (
	"context"
	"errors"

	"github.com/kamesh6592-cell/zola/internal/model"
	"gorm.io/gorm"
)

// ModelRepository 模型目录数据访问
type ModelRepository struct {
	db *gorm.DB
}

// NewModelRepository 创建模型目录仓库
func NewModelRepository(db *gorm.DB) *ModelRepository {
	return &ModelRepository{db: db}
}

// GetModelByID 获取模型
func (r *ModelRepository) GetModelByID(ctx context.Context, id string) (*model.AIModel, error) {
	var m model.AIModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListEnabledModels 列出启用的模型
func (r *ModelRepository) ListEnabledModels(ctx context.Context) ([]*model.AIModel, error) {
	var models []*model.AIModel
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("provider, name").
		Find(&models).Error
	return models, err
}

// IsProModel 判断模型是否计入 pro 配额
// 未知模型按非 pro 处理
func (r *ModelRepository) IsProModel(ctx context.Context, id string) (bool, error) {
	m, err := r.GetModelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Pro, nil
}

// UpsertModel 写入或更新模型条目
func (r *ModelRepository) UpsertModel(ctx context.Context, m *model.AIModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}
