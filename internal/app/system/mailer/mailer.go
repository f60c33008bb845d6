// internal/app/system/mailer/mailer.go

// Package mailer sends application email over SMTP. The transport is
// configured once at startup from the mail_smtp_* config keys; message
// bodies are built by the template helpers in this package.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Email is a single outbound message with plain-text and HTML alternatives.
type Email struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string // empty disables authentication (e.g. local Mailpit)
	Password string
	From     string
	FromName string
}

// Mailer sends Email messages through a single SMTP endpoint.
type Mailer struct {
	cfg Config
}

// New builds a Mailer from the given transport config.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers the message to all recipients in one SMTP transaction.
func (m *Mailer) Send(e Email) error {
	if len(e.To) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := m.build(e)
	if err := smtp.SendMail(addr, auth, m.cfg.From, e.To, msg); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

// build assembles a multipart/alternative MIME message.
func (m *Mailer) build(e Email) []byte {
	const boundary = "brainhive-alt-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(e.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if e.HTMLBody == "" {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(e.TextBody)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(e.TextBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(e.HTMLBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
