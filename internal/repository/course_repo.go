package repository

import (
	"context"

	"gorm.io/gorm"

	"edu-space/backend/internal/model"
)

var courseOrdering = newOrderSpec("created_at DESC, id DESC", "id", "name", "created_at", "updated_at", "is_active")

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	// GetByID 预加载分类与创建者
	GetByID(ctx context.Context, id uint) (*model.Course, error)
	List(ctx context.Context, filter ListFilter) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id uint) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Omit("Category", "CreatedBy").Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("CreatedBy").
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context, filter ListFilter) ([]model.Course, error) {
	var courses []model.Course
	db := applySearch(r.db.WithContext(ctx).Model(&model.Course{}), filter.Search, "name", "description")
	err := applyOrdering(db, filter.Ordering, courseOrdering).
		Preload("Category").
		Preload("CreatedBy").
		Find(&courses).Error
	return courses, err
}

// Update 仅更新课程自身字段，created_by_id 不可修改
func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).
		Model(course).
		Select("name", "description", "category_id", "is_active", "updated_at").
		Updates(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Course{}, id).Error
}
