package mailer

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"edu-space/backend/config"
)

func TestNew_NoHostFallsBackToLog(t *testing.T) {
	m := New(&config.MailConfig{}, zap.NewNop())
	if _, ok := m.(*LogMailer); !ok {
		t.Fatalf("未配置 SMTP 时应返回 LogMailer，实际 %T", m)
	}
	if err := m.Send(context.Background(), "a@b.c", "s", "b"); err != nil {
		t.Errorf("LogMailer 不应返回错误: %v", err)
	}
}

// ── 本地 SMTP 桩 ──

type smtpSession struct {
	from string
	rcpt []string
	data string
}

// startFakeSMTP 启动只支持明文会话的最小 SMTP 服务，rejectRcpt 为 true 时拒绝所有收件人
func startFakeSMTP(t *testing.T, rejectRcpt bool) (host string, port int, sessions <-chan smtpSession) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("监听失败: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	ch := make(chan smtpSession, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		tp := textproto.NewConn(conn)
		var s smtpSession
		_ = tp.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
			switch cmd {
			case "EHLO", "HELO":
				_ = tp.PrintfLine("250 localhost")
			case "MAIL":
				s.from = line
				_ = tp.PrintfLine("250 OK")
			case "RCPT":
				if rejectRcpt {
					_ = tp.PrintfLine("550 mailbox unavailable")
					continue
				}
				s.rcpt = append(s.rcpt, line)
				_ = tp.PrintfLine("250 OK")
			case "DATA":
				_ = tp.PrintfLine("354 go ahead")
				lines, err := tp.ReadDotLines()
				if err != nil {
					return
				}
				s.data = strings.Join(lines, "\r\n")
				_ = tp.PrintfLine("250 queued")
			case "QUIT":
				_ = tp.PrintfLine("221 bye")
				ch <- s
				return
			default:
				_ = tp.PrintfLine("502 unsupported")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port, ch
}

func TestSMTPMailer_Send(t *testing.T) {
	host, port, sessions := startFakeSMTP(t, false)
	m := New(&config.MailConfig{SMTPHost: host, SMTPPort: port, From: "noreply@example.com"}, zap.NewNop())
	if _, ok := m.(*SMTPMailer); !ok {
		t.Fatalf("配置 SMTP 主机时应返回 SMTPMailer，实际 %T", m)
	}

	if err := m.Send(context.Background(), "student@example.com", "更新: 新课程", "内容"); err != nil {
		t.Fatalf("Send 应成功: %v", err)
	}

	select {
	case s := <-sessions:
		if !strings.Contains(s.from, "noreply@example.com") {
			t.Errorf("发件人不正确: %s", s.from)
		}
		if len(s.rcpt) != 1 || !strings.Contains(s.rcpt[0], "student@example.com") {
			t.Errorf("收件人不正确: %v", s.rcpt)
		}
		if !strings.Contains(s.data, "Subject: 更新: 新课程\r\n") {
			t.Error("邮件头缺少 Subject")
		}
		if !strings.Contains(s.data, "内容") {
			t.Error("邮件正文缺失")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("SMTP 会话未完成")
	}
}

func TestSMTPMailer_SendErrors(t *testing.T) {
	host, port, _ := startFakeSMTP(t, true)
	m := &SMTPMailer{
		cfg:    config.MailConfig{SMTPHost: host, SMTPPort: port, From: "noreply@example.com"},
		logger: zap.NewNop(),
	}

	if err := m.Send(context.Background(), "", "s", "b"); err == nil {
		t.Error("空收件人应返回错误")
	}
	if err := m.Send(context.Background(), "x@y.z\r\nBcc: evil@y.z", "s", "b"); err == nil {
		t.Error("收件人包含换行应返回错误")
	}
	if err := m.Send(context.Background(), "x@y.z", "s", "b"); err == nil {
		t.Error("SMTP 拒绝收件人应返回错误")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, "x@y.z", "s", "b"); !errors.Is(err, context.Canceled) {
		t.Errorf("已取消的 context 应返回 context.Canceled，实际: %v", err)
	}
}

// silentListener 接受连接但从不发送问候语
func silentListener(t *testing.T) (string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("监听失败: %v", err)
	}
	done := make(chan struct{})
	t.Cleanup(func() {
		close(done)
		ln.Close()
	})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				// 只读不写，直到测试结束
				go func() { _, _ = bufio.NewReader(c).ReadString(0) }()
				<-done
			}(conn)
		}
	}()
	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

func TestSMTPMailer_SilentServerHonoursContextDeadline(t *testing.T) {
	host, port := silentListener(t)
	m := &SMTPMailer{
		cfg:    config.MailConfig{SMTPHost: host, SMTPPort: port, From: "noreply@example.com"},
		logger: zap.NewNop(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := m.Send(ctx, "x@y.z", "s", "b")
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("服务器无响应时应返回错误")
	}
	if elapsed > 2*time.Second {
		t.Errorf("期望在截止时间附近返回，实际耗时=%v", elapsed)
	}
}

func TestSMTPMailer_SilentServerHonoursSendTimeout(t *testing.T) {
	host, port := silentListener(t)
	m := &SMTPMailer{
		cfg: config.MailConfig{
			SMTPHost:    host,
			SMTPPort:    port,
			From:        "noreply@example.com",
			SendTimeout: 200 * time.Millisecond,
		},
		logger: zap.NewNop(),
	}

	start := time.Now()
	err := m.Send(context.Background(), "x@y.z", "s", "b")
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("超过 SendTimeout 应返回错误")
	}
	if elapsed > 2*time.Second {
		t.Errorf("期望在 SendTimeout 附近返回，实际耗时=%v", elapsed)
	}
}

func TestSMTPMailer_Timeout(t *testing.T) {
	m := &SMTPMailer{}
	if m.timeout() != defaultSendTimeout {
		t.Errorf("未配置时期望默认超时 %v，实际=%v", defaultSendTimeout, m.timeout())
	}
	m.cfg.SendTimeout = 5 * time.Second
	if m.timeout() != 5*time.Second {
		t.Errorf("期望 5s，实际=%v", m.timeout())
	}
}
