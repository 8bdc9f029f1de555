package model

import "time"

// AIModel 模型目录条目
// Pro 标记决定消息发送计入哪个每日配额桶
type AIModel struct {
	ID        string    `gorm:"primaryKey;size:100" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Provider  string    `gorm:"size:100;index" json:"provider"`
	Pro       bool      `gorm:"default:false" json:"pro"`
	Enabled   bool      `gorm:"default:true;index" json:"enabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (AIModel) TableName() string {
	return "ai_models"
}
