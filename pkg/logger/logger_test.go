package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"edu-space/backend/config"
)

func TestNewLogger_Levels(t *testing.T) {
	l, err := NewLogger(&config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger 失败: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("warn 级别下不应启用 info 日志")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("warn 级别下应启用 error 日志")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "verbose"}); err == nil {
		t.Error("无效日志级别应返回错误")
	}
}
