package client

import (
	"fmt"
	"marketplace-api/internal/config"
	"net/smtp"
)

// Mailer sends notification emails. Delivery is best-effort: callers log
// failures and move on.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	cfg *config.SMTP
}

func NewMailer(cfg *config.SMTP) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body,
	)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}
