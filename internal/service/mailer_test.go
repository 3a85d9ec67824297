package service

import (
	"strings"
	"testing"
)

func TestBuildResetMessage(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "noreply@example.com", "secret", "Bookslum")

	msg := m.buildResetMessage("reader@example.com", "http://localhost:5005/reset_password/abc123")

	wantLines := []string{
		"From: Bookslum <noreply@example.com>",
		"To: reader@example.com",
		"Subject: Password Reset Request",
		"http://localhost:5005/reset_password/abc123",
	}
	for _, want := range wantLines {
		if !strings.Contains(msg, want) {
			t.Errorf("邮件报文缺少 %q", want)
		}
	}

	// 头与正文之间必须有空行
	if !strings.Contains(msg, "\r\n\r\n") {
		t.Error("邮件报文缺少头/正文分隔空行")
	}
	if strings.Contains(strings.ReplaceAll(msg, "\r\n", ""), "\n") {
		t.Error("邮件报文应只使用 CRLF 换行")
	}
}
