package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"edu-space/backend/config"
)

// 常见弱密码（小写比较）
var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		123456 123456789 12345678 password qwerty 12345 qwerty123 1q2w3e 1234567 111111
		1234567890 123123 abc123 password1 iloveyou 000000 qwertyuiop 123321 654321 666666
		987654321 admin admin123 letmein welcome monkey dragon football baseball master
		sunshine princess shadow superman michael trustno1 passw0rd password123 qazwsx
		asdfghjkl zxcvbnm 1qaz2wsx 1q2w3e4r 1q2w3e4r5t q1w2e3r4 aa123456 11111111 88888888
		secret changeme computer internet starwars whatever freedom hello123 welcome1
	`) {
		commonPasswords[p] = struct{}{}
	}
}

var attrSplitter = regexp.MustCompile(`\W+`)

// similarityThreshold 与用户属性的相似度上限
const similarityThreshold = 0.7

// PasswordPolicy 注册密码强度校验
type PasswordPolicy struct {
	cfg config.PasswordPolicyConfig
}

// NewPasswordPolicy 创建密码策略
func NewPasswordPolicy(cfg config.PasswordPolicyConfig) *PasswordPolicy {
	return &PasswordPolicy{cfg: cfg}
}

// UserAttr 参与相似度比较的用户属性
type UserAttr struct {
	Label string
	Value string
}

// Validate 返回全部未通过的规则说明，通过时返回 nil
func (p *PasswordPolicy) Validate(password string, attrs ...UserAttr) []string {
	var reasons []string

	if p.cfg.RejectSimilar {
		if label, ok := similarTo(password, attrs); ok {
			reasons = append(reasons, fmt.Sprintf("密码与%s过于相似", label))
		}
	}
	if n := p.cfg.MinLength; n > 0 && len([]rune(password)) < n {
		reasons = append(reasons, fmt.Sprintf("密码过短，至少需要 %d 个字符", n))
	}
	if p.cfg.RejectCommon {
		if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
			reasons = append(reasons, "密码过于常见")
		}
	}
	if p.cfg.RejectNumericOnly && isNumeric(password) {
		reasons = append(reasons, "密码不能全为数字")
	}
	return reasons
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// similarTo 密码与任一属性（或其以非单词字符拆分的片段）相似度达到阈值
func similarTo(password string, attrs []UserAttr) (string, bool) {
	pw := strings.ToLower(password)
	for _, attr := range attrs {
		value := strings.ToLower(attr.Value)
		if value == "" {
			continue
		}
		parts := append(attrSplitter.Split(value, -1), value)
		for _, part := range parts {
			if part == "" {
				continue
			}
			if similarity(pw, part) >= similarityThreshold {
				return attr.Label, true
			}
		}
	}
	return "", false
}

// similarity Ratcliff/Obershelp 相似度：2*匹配字符数/总字符数
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

func matchingChars(a, b []rune) int {
	i, j, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingChars(a[:i], b[:j]) + matchingChars(a[i+size:], b[j+size:])
}

func longestCommonSubstring(a, b []rune) (int, int, int) {
	bestI, bestJ, best := 0, 0, 0
	prev := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		cur := make([]int, len(b)+1)
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best, bestI, bestJ = cur[j], i-cur[j], j-cur[j]
				}
			}
		}
		prev = cur
	}
	return bestI, bestJ, best
}
