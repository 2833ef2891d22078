package model

// Course 课程，对应表 courses
// CreatedByID 创建后不可修改
type Course struct {
	ID          uint   `gorm:"primaryKey"                   json:"id"`
	CategoryID  uint   `gorm:"not null;index"               json:"category_id"`
	Name        string `gorm:"type:varchar(200);not null"   json:"name"`
	Description string `gorm:"type:text;not null"           json:"description"`
	CreatedByID uint   `gorm:"not null;index"               json:"created_by_id"`
	IsActive    bool   `gorm:"not null"                     json:"is_active"` // 零值 false 需写入，不使用 gorm default
	TimestampModel

	// 关联
	Category  *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"  json:"category,omitempty"`
	CreatedBy *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"created_by,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// OwnerID 课程所有者即创建者
func (c *Course) OwnerID() (uint, bool) {
	return c.CreatedByID, c.CreatedByID != 0
}
