// Package validate 注册自定义校验标签，并将 validator/v10 的校验错误转换为字段错误表。
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 用户名仅允许字母、数字及 @ . + - _
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var once sync.Once

// Register 在 gin 的默认校验引擎上注册自定义标签与字段名规则（幂等）
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
}

// fieldName 错误中使用 json 标签名，其次 form 标签名
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// FieldErrors 将绑定错误转换为 字段 → 原因；非校验错误返回 nil
func FieldErrors(err error) map[string]string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		name := fe.Field()
		if _, exists := fields[name]; !exists {
			fields[name] = message(fe)
		}
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "该字段为必填项"
	case "email":
		return "请输入有效的邮箱地址"
	case "max":
		return "长度不能超过 " + fe.Param()
	case "min":
		return "不能小于 " + fe.Param()
	case "oneof":
		return "取值必须为以下之一: " + fe.Param()
	case "username":
		return "用户名只能包含字母、数字及 @/./+/-/_ 字符"
	default:
		return "取值无效"
	}
}
