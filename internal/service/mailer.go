package service

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer 通过 SMTP 发送密码重置邮件
type Mailer struct {
	host     string
	port     string
	username string
	password string
	siteName string
}

// NewMailer 创建邮件服务
func NewMailer(host, port, username, password, siteName string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		siteName: siteName,
	}
}

// SendResetMail 发送带重置链接的邮件
func (m *Mailer) SendResetMail(to, resetURL string) error {
	msg := m.buildResetMessage(to, resetURL)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.username, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("发送重置邮件失败: %w", err)
	}
	return nil
}

// buildResetMessage 构造完整的邮件报文（头 + 正文）
func (m *Mailer) buildResetMessage(to, resetURL string) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.siteName, m.username))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString("Subject: Password Reset Request\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString("To reset your password, visit the following link:\r\n")
	msg.WriteString(resetURL + "\r\n")
	msg.WriteString("\r\n")
	msg.WriteString("If you did not make this request then simply ignore this email and no changes will be made.\r\n")

	return msg.String()
}
