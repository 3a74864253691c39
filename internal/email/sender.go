package email

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"strconv"
	"time"
)

// Config carries the SMTP settings for outbound mail.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	From     string // defaults to Username when empty
}

// Sender delivers transactional mail over plain SMTP.
type Sender struct {
	cfg Config
}

func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// SendPasswordReset mails the reset link as a multipart HTML + text message.
func (s *Sender) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("email: SMTP not configured")
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	msg, err := buildMessage(s.cfg.FromName, from, to,
		"Password recovery - Taskerra",
		passwordResetText(resetURL),
		passwordResetHTML(resetURL),
	)
	if err != nil {
		return err
	}

	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	// smtp.SendMail has no context support; run it aside so the caller's
	// deadline still applies.
	done := make(chan error, 1)
	go func() { done <- smtp.SendMail(addr, auth, from, []string{to}, msg) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func buildMessage(fromName, from, to, subject, textBody, htmlBody string) ([]byte, error) {
	var buf bytes.Buffer
	alt := multipart.NewWriter(&buf)

	header := "From: " + fromName + " <" + from + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Date: " + time.Now().Format(time.RFC1123Z) + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/alternative; boundary=" + alt.Boundary() + "\r\n\r\n"

	out := bytes.NewBufferString(header)

	// Text part first so clients prefer the HTML alternative.
	part, err := alt.CreatePart(map[string][]string{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(textBody)); err != nil {
		return nil, err
	}

	part, err = alt.CreatePart(map[string][]string{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if err := alt.Close(); err != nil {
		return nil, err
	}

	out.Write(buf.Bytes())
	return out.Bytes(), nil
}
