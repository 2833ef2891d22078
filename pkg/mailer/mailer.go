package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"edu-space/backend/config"
)

// Mailer 邮件发送接口
// 单次调用可能失败，由调用方决定是否忽略
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// defaultSendTimeout 单封邮件（连接到 QUIT）的默认超时
const defaultSendTimeout = 30 * time.Second

// New 根据配置返回 Mailer：未配置 SMTP 主机时退化为仅记录日志
func New(cfg *config.MailConfig, logger *zap.Logger) Mailer {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		logger.Warn("未配置 SMTP，邮件仅写入日志")
		return &LogMailer{logger: logger}
	}
	return &SMTPMailer{cfg: *cfg, logger: logger}
}

// ── SMTP ──

// SMTPMailer 基于 SMTP 的发送器
// 服务器支持 STARTTLS 时自动升级；连接的读写截止时间取 ctx 与 SendTimeout 中较早者
type SMTPMailer struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

func (m *SMTPMailer) timeout() time.Duration {
	if m.cfg.SendTimeout > 0 {
		return m.cfg.SendTimeout
	}
	return defaultSendTimeout
}

// Send 发送纯文本邮件
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("收件人为空")
	}
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return fmt.Errorf("邮件头包含非法换行")
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout())
	defer cancel()

	addr := net.JoinHostPort(m.cfg.SMTPHost, strconv.Itoa(m.cfg.SMTPPort))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("连接 SMTP 服务器失败: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// ctx 提前取消时关闭连接，打断阻塞中的读写
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := m.deliver(conn, to, buildMessage(m.cfg.From, to, subject, body)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("SMTP 发送超时: %w", ctxErr)
		}
		return fmt.Errorf("SMTP 发送失败: %w", err)
	}
	return nil
}

// deliver 在已建立的连接上完成一次 SMTP 会话
func (m *SMTPMailer) deliver(conn net.Conn, to string, msg []byte) error {
	c, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.SMTPHost}); err != nil {
			return err
		}
	}
	if m.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)); err != nil {
			return err
		}
	}
	if err := c.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// ── 日志 ──

// LogMailer 仅记录日志的发送器（开发环境）
type LogMailer struct {
	logger *zap.Logger
}

// Send 将邮件写入日志
func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info("邮件（未投递）", zap.String("to", to), zap.String("subject", subject))
	return nil
}
