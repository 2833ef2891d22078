// Package policy 资源访问鉴权。
//
// 每次请求由 Handler 构造 Actor 并显式传入 Service，Service 在加载资源后调用
// Evaluate 判定，不依赖任何请求级全局状态。
package policy

import (
	"errors"

	"edu-space/backend/internal/model"
)

// Action 资源操作类型
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// IsRead 是否只读操作
func (a Action) IsRead() bool {
	return a == ActionList || a == ActionRetrieve
}

const defaultDeniedMessage = "您无权执行此操作"

// ErrUnauthenticated 写操作要求登录
var ErrUnauthenticated = errors.New("身份认证信息未提供")

// DeniedError 鉴权拒绝，Message 为面向用户的原因
type DeniedError struct {
	Message string
}

func (e *DeniedError) Error() string { return e.Message }

func deny(msg string) error {
	if msg == "" {
		msg = defaultDeniedMessage
	}
	return &DeniedError{Message: msg}
}

// IsDenied 判断是否为鉴权拒绝
func IsDenied(err error) bool {
	var de *DeniedError
	return errors.As(err, &de)
}

// Actor 当前请求的操作者
type Actor struct {
	UserID        uint
	Username      string
	Role          string
	Authenticated bool
}

// Anonymous 匿名操作者
func Anonymous() Actor { return Actor{} }

// IsAdmin 是否已登录的管理员
func (a Actor) IsAdmin() bool { return a.Authenticated && a.Role == model.RoleAdmin }

// IsStudent 是否已登录的学生
func (a Actor) IsStudent() bool { return a.Authenticated && a.Role == model.RoleStudent }

// Owns 判断操作者是否为资源所有者
func (a Actor) Owns(o model.Owned) bool {
	if !a.Authenticated || o == nil {
		return false
	}
	id, ok := o.OwnerID()
	return ok && id == a.UserID
}

// Policy 资源鉴权策略
// resource 可为 nil（list / create 时尚无具体对象）
type Policy interface {
	Evaluate(actor Actor, action Action, resource any) error
}

// ── 内容作者策略（分类/课程/课时/视频/附件） ──

// AuthorPolicy 读操作开放；创建要求管理员；
// 更新/删除 Owned 资源要求为所有者，其余资源要求管理员
type AuthorPolicy struct{}

func (AuthorPolicy) Evaluate(actor Actor, action Action, resource any) error {
	if action.IsRead() {
		return nil
	}
	if !actor.Authenticated {
		return ErrUnauthenticated
	}
	if action == ActionCreate {
		if actor.IsAdmin() {
			return nil
		}
		return deny("")
	}

	// 所有者未知（如关联未加载）时拒绝，不退化为管理员判定
	if o, ok := resource.(model.Owned); ok {
		if actor.Owns(o) {
			return nil
		}
		return deny("")
	}
	if actor.IsAdmin() {
		return nil
	}
	return deny("")
}

// ── 学生策略（评价） ──

// StudentPolicy 读操作开放；写操作要求已登录的学生
type StudentPolicy struct{}

func (StudentPolicy) Evaluate(actor Actor, action Action, _ any) error {
	if action.IsRead() {
		return nil
	}
	if !actor.Authenticated {
		return ErrUnauthenticated
	}
	if actor.IsStudent() {
		return nil
	}
	return deny("")
}

// ── 管理员策略（群发/角色/导出） ──

// AdminPolicy 读操作开放；写操作要求管理员
type AdminPolicy struct{}

func (AdminPolicy) Evaluate(actor Actor, action Action, _ any) error {
	if action.IsRead() {
		return nil
	}
	if !actor.Authenticated {
		return ErrUnauthenticated
	}
	if actor.IsAdmin() {
		return nil
	}
	return deny("")
}

// ── 登录用户策略（评论） ──

// AuthenticatedPolicy 读操作开放；写操作要求登录
type AuthenticatedPolicy struct{}

func (AuthenticatedPolicy) Evaluate(actor Actor, action Action, _ any) error {
	if action.IsRead() || actor.Authenticated {
		return nil
	}
	return ErrUnauthenticated
}

// ── 本人策略（个人资料） ──

// SelfPolicy 任意操作均要求目标用户为操作者本人，与角色无关
type SelfPolicy struct{}

func (SelfPolicy) Evaluate(actor Actor, _ Action, resource any) error {
	if !actor.Authenticated {
		return ErrUnauthenticated
	}
	u, ok := resource.(*model.User)
	if !ok || u == nil || u.ID != actor.UserID {
		return deny("您无权访问此页面")
	}
	return nil
}

// RequireAdmin 不区分读写，要求已登录的管理员（数据导出等）
func RequireAdmin(actor Actor) error {
	if !actor.Authenticated {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return deny("")
	}
	return nil
}
