package model

// Lesson 课时，对应表 lessons
type Lesson struct {
	ID       uint   `gorm:"primaryKey"                 json:"id"`
	CourseID uint   `gorm:"not null;index"             json:"course_id"`
	Title    string `gorm:"type:varchar(200);not null" json:"title"`
	Content  string `gorm:"type:text;not null"         json:"content"` // 富文本 HTML
	TimestampModel

	// 关联
	Course   *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
	Videos   []Video   `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
	Files    []File    `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	Comments []Comment `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Ratings  []Rating  `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"ratings,omitempty"`
}

// TableName 指定表名
func (Lesson) TableName() string { return "lessons" }

// OwnerID 课时所有者为所属课程的创建者，需预加载 Course
func (l *Lesson) OwnerID() (uint, bool) {
	if l.Course == nil {
		return 0, false
	}
	return l.Course.OwnerID()
}
