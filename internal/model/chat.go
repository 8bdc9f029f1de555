package model

import "time"

// Chat 聊天会话
// 游客会话同样落库，客户端通过本地缓存的 id 复用
type Chat struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"index;size:36" json:"user_id"`
	Title        string    `gorm:"size:255" json:"title"`
	Model        string    `gorm:"size:100" json:"model"`
	SystemPrompt string    `gorm:"type:text" json:"system_prompt,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Messages     []Message `gorm:"foreignKey:ChatID" json:"messages,omitempty"`
}

// Message 聊天消息
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ChatID    string    `gorm:"index;size:36" json:"chat_id"`
	UserID    string    `gorm:"index;size:36" json:"user_id"`
	Role      string    `gorm:"size:20;index" json:"role"` // user, assistant, system
	Content   string    `gorm:"type:text" json:"content"`
	Model     string    `gorm:"size:100" json:"model"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (Chat) TableName() string {
	return "chats"
}

func (Message) TableName() string {
	return "messages"
}
