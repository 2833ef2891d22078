package model

import "time"

// Comment 课时评论，对应表 comments
// 创建后不可修改
type Comment struct {
	ID        uint      `gorm:"primaryKey"              json:"id"`
	LessonID  uint      `gorm:"not null;index"          json:"lesson_id"`
	UserID    uint      `gorm:"not null"                json:"user_id"`
	Content   string    `gorm:"type:text;not null"      json:"content"`
	CreatedAt time.Time `gorm:"not null"                json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"   json:"user,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string { return "comments" }

// Rating 课时评价（喜欢/不喜欢），对应表 ratings
// 同一用户对同一课时仅一条，由 (lesson_id, user_id) 唯一索引保证
type Rating struct {
	ID       uint `gorm:"primaryKey"                                   json:"id"`
	LessonID uint `gorm:"not null;uniqueIndex:idx_ratings_lesson_user" json:"lesson_id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_ratings_lesson_user" json:"user_id"`
	Liked    bool `gorm:"not null"                                     json:"liked"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"   json:"user,omitempty"`
}

// TableName 指定表名
func (Rating) TableName() string { return "ratings" }
