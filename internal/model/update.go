package model

import "time"

// Update 公告，对应表 updates
// 每创建一条即向全部用户群发一次邮件
type Update struct {
	ID        uint      `gorm:"primaryKey"                 json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text;not null"         json:"content"`
	CreatedAt time.Time `gorm:"not null"                   json:"created_at"`
}

// TableName 指定表名
func (Update) TableName() string { return "updates" }

// BlacklistedToken 已注销的 Refresh Token（Redis 不可用时的数据库兜底）
type BlacklistedToken struct {
	JTI       string    `gorm:"column:jti;type:varchar(64);primaryKey" json:"jti"`
	ExpiresAt time.Time `gorm:"not null;index"                          json:"expires_at"`
}

// TableName 指定表名
func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }
