package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"

	"engagesphere/internal/config"
	"engagesphere/internal/domain/ports/adapter"
)

var _ adapter.Mailer = (*SMTPMailer)(nil)

const otpBodyTemplate = `Hello,

Your verification code is:

    {{.Code}}

The code expires in {{.TTLMinutes}} minutes. If you did not request it you
can safely ignore this email.
`

// SMTPMailer sends transactional mail over plain SMTP with AUTH PLAIN.
type SMTPMailer struct {
	cfg    *config.SMTPConfig
	otpTpl *template.Template
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		otpTpl: template.Must(template.New("otp").Parse(otpBodyTemplate)),
	}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, subject, code string) error {
	var body bytes.Buffer
	err := m.otpTpl.Execute(&body, struct {
		Code       string
		TTLMinutes int
	}{Code: code, TTLMinutes: 10})
	if err != nil {
		return fmt.Errorf("render otp mail: %w", err)
	}

	from := m.cfg.From
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.cfg.FromName, from, to, subject, body.String(),
	))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, from, []string{to}, msg)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send otp mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
