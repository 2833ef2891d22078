// Package testutil 测试辅助：内存 SQLite 数据库与种子数据。
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"edu-space/backend/internal/model"
	"edu-space/backend/internal/repository"
)

// NewSQLiteDB 创建独立的内存数据库并完成建表，测试结束时关闭
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开 SQLite 失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取 sql.DB 失败: %v", err)
	}
	// 内存库共享缓存下单连接可避免表锁冲突
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate 失败: %v", err)
	}
	return db
}

// SeedUser 创建用户，密码为 password
func SeedUser(t testing.TB, db *gorm.DB, username, role, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("密码哈希失败: %v", err)
	}
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

// SeedCourse 创建分类与课程
func SeedCourse(t testing.TB, db *gorm.DB, owner *model.User, name string) *model.Course {
	t.Helper()

	category := &model.Category{Name: name + " 分类"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	course := &model.Course{
		CategoryID:  category.ID,
		Name:        name,
		Description: name + " 简介",
		CreatedByID: owner.ID,
		IsActive:    true,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	return course
}

// SeedLesson 创建课时
func SeedLesson(t testing.TB, db *gorm.DB, course *model.Course, title string) *model.Lesson {
	t.Helper()

	lesson := &model.Lesson{CourseID: course.ID, Title: title, Content: "<p>" + title + "</p>"}
	if err := db.Omit("Course").Create(lesson).Error; err != nil {
		t.Fatalf("创建课时失败: %v", err)
	}
	return lesson
}
