package model

import "time"

// Attachment 视频与附件的公共字段
type Attachment struct {
	ID          uint      `gorm:"primaryKey"                 json:"id"`
	LessonID    uint      `gorm:"not null;index"             json:"lesson_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	File        string    `gorm:"type:varchar(255);not null" json:"file"` // 存储相对路径
	Description string    `gorm:"type:text"                  json:"description"`
	UploadedAt  time.Time `gorm:"not null;autoCreateTime"    json:"uploaded_at"`
}

// Video 课时视频，对应表 videos
type Video struct {
	Attachment
}

// TableName 指定表名
func (Video) TableName() string { return "videos" }

// File 课时附件，对应表 files
type File struct {
	Attachment
}

// TableName 指定表名
func (File) TableName() string { return "files" }
