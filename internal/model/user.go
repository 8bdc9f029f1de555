package model

import "time"

// User 用户
// 登录用户在表中有持久行；anonymous 标记游客占位行
// 每日计数器由消息发送写路径原子递增，窗口过期时在写路径上清零
type User struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	Email                string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	DisplayName          string     `gorm:"size:100" json:"display_name"`
	PasswordHash         string     `gorm:"size:255" json:"-"`
	ProfileImage         string     `gorm:"size:500" json:"profile_image"`
	Anonymous            bool       `gorm:"default:false;index" json:"anonymous"`
	Premium              bool       `gorm:"default:false" json:"premium"`
	MessageCount         int        `gorm:"default:0" json:"message_count"`
	DailyMessageCount    int        `gorm:"default:0" json:"daily_message_count"`
	DailyProMessageCount int        `gorm:"default:0" json:"daily_pro_message_count"`
	DailyReset           *time.Time `json:"daily_reset"`
	SystemPrompt         string     `gorm:"type:text" json:"system_prompt,omitempty"`
	LastActiveAt         *time.Time `json:"last_active_at"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// UserInfo 用户信息（不含敏感数据）
type UserInfo struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	ProfileImage string    `json:"profile_image"`
	Premium      bool      `json:"premium"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUserInfo 转换为 UserInfo
func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		ProfileImage: u.ProfileImage,
		Premium:      u.Premium,
		CreatedAt:    u.CreatedAt,
	}
}

// AuthToken 认证令牌
type AuthToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36;not null" json:"user_id"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	TokenType string    `gorm:"size:50;not null" json:"token_type"` // access_token, refresh_token
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (AuthToken) TableName() string {
	return "auth_tokens"
}
