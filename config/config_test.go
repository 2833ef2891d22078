package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
auth:
  jwt_secret: "unit-test-secret-0123456789"
  access_token_ttl: 10m
db:
  driver: sqlite
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 Port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenTTL != 10*time.Minute {
		t.Errorf("期望 AccessTokenTTL=10m，实际=%v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.RefreshTokenTTL != 24*time.Hour {
		t.Errorf("期望默认 RefreshTokenTTL=24h，实际=%v", cfg.Auth.RefreshTokenTTL)
	}
	if cfg.Auth.PasswordPolicy.MinLength != 8 {
		t.Errorf("期望默认密码最小长度=8，实际=%d", cfg.Auth.PasswordPolicy.MinLength)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("期望 Driver=sqlite，实际=%s", cfg.Database.Driver)
	}
	if !cfg.Feature.IsBroadcastVersionBlocked("v1") {
		t.Error("默认应禁用 v1 群发")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "unit-test-secret-0123456789"
`)
	t.Setenv("EDU_SERVER_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("环境变量应覆盖默认值，期望 7070，实际=%d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "postgres"},
			Auth: AuthConfig{
				JWTSecret:       "unit-test-secret-0123456789",
				AccessTokenTTL:  time.Minute,
				RefreshTokenTTL: time.Hour,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"密钥为空", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"未知驱动", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"TTL 为零", func(c *Config) { c.Auth.RefreshTokenTTL = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("期望 wantErr=%v，实际 err=%v", tt.wantErr, err)
			}
		})
	}
}

func TestIsBroadcastVersionBlocked(t *testing.T) {
	f := FeatureConfig{BlockedBroadcastVersions: []string{"v1"}}
	if !f.IsBroadcastVersionBlocked("V1") {
		t.Error("版本比较应忽略大小写")
	}
	if f.IsBroadcastVersionBlocked("v2") {
		t.Error("v2 不应被禁用")
	}
	if f.IsBroadcastVersionBlocked("") {
		t.Error("无版本标记时不应被禁用")
	}
}
