package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"time"

	"github.com/sippke/notification-service/config"

	"github.com/sirupsen/logrus"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// SendInfo describes the accepted envelope of a sent message.
type SendInfo struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	SentAt time.Time `json:"sentAt"`
}

func NewMailer(cfg *config.EmailConfig) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     from,
	}
}

// Send delivers a single HTML message over STARTTLS. One attempt, no retry.
func (m *Mailer) Send(to, subject, htmlBody string) (*SendInfo, error) {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial smtp server: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
		return nil, fmt.Errorf("failed to start tls: %w", err)
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return nil, fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(m.from); err != nil {
		return nil, fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return nil, fmt.Errorf("smtp RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return nil, fmt.Errorf("smtp DATA failed: %w", err)
	}

	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" + htmlBody + "\r\n"

	if _, err := w.Write([]byte(msg)); err != nil {
		return nil, fmt.Errorf("smtp write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("smtp close failed: %w", err)
	}

	if err := client.Quit(); err != nil {
		logrus.Warnf("smtp quit failed: %v", err)
	}

	return &SendInfo{From: m.from, To: to, SentAt: time.Now()}, nil
}
