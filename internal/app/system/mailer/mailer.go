// internal/app/system/mailer/mailer.go

// Package mailer sends the app's transactional mail (password reset and
// password-changed notices) over SMTP.
package mailer

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// Mailer sends email through a single SMTP account.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New creates a Mailer.
func New(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Email is one outgoing message. When HTMLBody is set the message goes out
// as multipart/alternative with the text part first.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Send delivers the email and logs the outcome.
func (m *Mailer) Send(email Email) error {
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	var msg bytes.Buffer
	writeHeader(&msg, "From", from)
	writeHeader(&msg, "To", email.To)
	writeHeader(&msg, "Subject", email.Subject)
	writeHeader(&msg, "MIME-Version", "1.0")

	if email.HTMLBody == "" {
		writeHeader(&msg, "Content-Type", "text/plain; charset=UTF-8")
		msg.WriteString("\r\n")
		msg.WriteString(email.TextBody)
	} else {
		boundary := newBoundary()
		writeHeader(&msg, "Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
		msg.WriteString("\r\n")
		writePart(&msg, boundary, "text/plain; charset=UTF-8", email.TextBody)
		writePart(&msg, boundary, "text/html; charset=UTF-8", email.HTMLBody)
		fmt.Fprintf(&msg, "--%s--\r\n", boundary)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" && m.cfg.Pass != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.To}, msg.Bytes()); err != nil {
		m.log.Error("failed to send email",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	fmt.Fprintf(buf, "%s: %s\r\n", name, value)
}

func writePart(buf *bytes.Buffer, boundary, contentType, body string) {
	fmt.Fprintf(buf, "--%s\r\n", boundary)
	writeHeader(buf, "Content-Type", contentType)
	buf.WriteString("\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")
}

func newBoundary() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return "----=_Part_" + hex.EncodeToString(b)
}
