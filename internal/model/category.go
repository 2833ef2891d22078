package model

// Category 课程分类，对应表 categories
type Category struct {
	ID   uint   `gorm:"primaryKey"                   json:"id"`
	Name string `gorm:"type:varchar(200);not null"   json:"name"`
}

// TableName 指定表名
func (Category) TableName() string { return "categories" }
