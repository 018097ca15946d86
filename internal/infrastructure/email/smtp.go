package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPProvider transporte SMTP plano, pensado para Mailhog u otro relay local
// en desarrollo.
type SMTPProvider struct {
	host      string
	port      int
	user      string
	password  string
	fromEmail string
	fromName  string
}

// NewSMTPProvider construye el provider SMTP. Sin user se omite la autenticación.
func NewSMTPProvider(host string, port int, user, password, fromEmail, fromName string) *SMTPProvider {
	return &SMTPProvider{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Send envía un correo HTML por SMTP.
func (p *SMTPProvider) Send(ctx context.Context, to, subject, html string) error {
	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", p.fromName, p.fromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	var auth smtp.Auth
	if p.user != "" {
		auth = smtp.PlainAuth("", p.user, p.password, p.host)
	}
	if err := smtp.SendMail(addr, auth, p.fromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}
