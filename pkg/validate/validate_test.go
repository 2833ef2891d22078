package validate

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email"    binding:"required,email"`
	Role     string `form:"role"     binding:"omitempty,oneof=admin student"`
}

func TestFieldErrors(t *testing.T) {
	Register()
	Register() // 重复注册不应 panic

	err := binding.Validator.ValidateStruct(&sample{Username: "bad name!", Email: "x", Role: "root"})
	if err == nil {
		t.Fatal("期望校验失败")
	}

	fields := FieldErrors(err)
	for _, f := range []string{"username", "email", "role"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("缺少字段错误 %s，实际=%v", f, fields)
		}
	}
}

func TestFieldErrors_Valid(t *testing.T) {
	Register()
	if err := binding.Validator.ValidateStruct(&sample{Username: "ali.v@1", Email: "a@b.uz"}); err != nil {
		t.Errorf("期望校验通过，实际: %v", err)
	}
}

func TestFieldErrors_NonValidation(t *testing.T) {
	if FieldErrors(errors.New("EOF")) != nil {
		t.Error("非校验错误应返回 nil")
	}
}
