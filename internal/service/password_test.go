package service

import (
	"strings"
	"testing"

	"edu-space/backend/config"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	p := NewPasswordPolicy(config.PasswordPolicyConfig{
		MinLength:         8,
		RejectNumericOnly: true,
		RejectCommon:      true,
		RejectSimilar:     true,
	})
	attrs := []UserAttr{
		{Label: "用户名", Value: "jamshid"},
		{Label: "邮箱", Value: "jamshid.k@example.com"},
	}

	tests := []struct {
		name     string
		password string
		want     string // 期望出现的原因片段，空表示通过
	}{
		{"合格密码", "Zx9!mQ2#pL", ""},
		{"过短", "Zx9!mQ", "过短"},
		{"全数字", "48151623", "全为数字"},
		{"常见密码", "QWERTY123", "常见"},
		{"与用户名相似", "Jamshid12", "用户名"},
		{"与邮箱片段相似", "jamshidk", "相似"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons := p.Validate(tt.password, attrs...)
			if tt.want == "" {
				if len(reasons) != 0 {
					t.Errorf("期望通过，实际=%v", reasons)
				}
				return
			}
			joined := strings.Join(reasons, "；")
			if !strings.Contains(joined, tt.want) {
				t.Errorf("期望原因包含 %q，实际=%v", tt.want, reasons)
			}
		})
	}
}

func TestPasswordPolicy_Disabled(t *testing.T) {
	p := NewPasswordPolicy(config.PasswordPolicyConfig{})
	if reasons := p.Validate("123", UserAttr{Label: "用户名", Value: "123"}); len(reasons) != 0 {
		t.Errorf("关闭全部规则时应通过，实际=%v", reasons)
	}
}

func TestSimilarity(t *testing.T) {
	if got := similarity("abcd", "abcd"); got != 1 {
		t.Errorf("相同字符串相似度应为 1，实际=%v", got)
	}
	if got := similarity("abc", "xyz"); got != 0 {
		t.Errorf("无公共字符相似度应为 0，实际=%v", got)
	}
	// 2*4/(5+4)
	if got := similarity("abcde", "abce"); got < 0.88 || got > 0.89 {
		t.Errorf("期望约 0.889，实际=%v", got)
	}
}
