package email

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"newsdesk/config"
	"newsdesk/log"
	"newsdesk/orm"
)

// Message is one outbound email
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string // optional report file to attach
}

// Mailer submits mail over SMTP and records deliveries
type Mailer struct {
	cfg config.SMTPConfig
	db  *gorm.DB

	// send is swapped out in tests
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates an SMTP mailer. db is optional; when set, successful
// sends are recorded in storage.
func NewMailer(cfg config.SMTPConfig, db *gorm.DB) *Mailer {
	m := &Mailer{cfg: cfg, db: db}
	if cfg.UseTLS {
		m.send = m.sendWithStartTLS
	} else {
		m.send = smtp.SendMail
	}
	return m
}

// Send validates, builds, and submits the message, then records the
// delivery. The returned message ID is only meaningful on success.
func (m *Mailer) Send(ctx context.Context, msg *Message) (string, error) {
	if m.cfg.Host == "" {
		return "", fmt.Errorf("SMTP_HOST is not configured")
	}
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	if !IsValidAddress(from) {
		return "", fmt.Errorf("invalid 'from' email address: %s", from)
	}
	if !IsValidAddress(msg.To) {
		return "", fmt.Errorf("invalid 'to' email address: %s", msg.To)
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return "", fmt.Errorf("subject is required")
	}

	messageID := m.generateMessageID(msg.To)

	raw, err := BuildMessage(from, msg, messageID)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled before sending email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	log.Infof(ctx, "[Email] Sending to %s via %s (subject: %q)", msg.To, addr, msg.Subject)

	if err := m.send(addr, auth, from, []string{msg.To}, raw); err != nil {
		return "", fmt.Errorf("smtp send failed: %w", err)
	}

	log.Infof(ctx, "[Email] Sent %s", messageID)

	if m.db != nil {
		delivery := &orm.Delivery{
			Recipient:  msg.To,
			Subject:    msg.Subject,
			MessageID:  messageID,
			ReportPath: msg.AttachmentPath,
			SentAt:     time.Now(),
		}
		if err := orm.CreateDelivery(m.db, delivery); err != nil {
			log.Warnf(ctx, "[Email] Failed to record delivery: %v", err)
		}
	}

	return messageID, nil
}

// IsValidAddress does basic shape validation of an email address
func IsValidAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}
	parts := strings.Split(addr, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}

// BuildMessage renders the RFC 2822 message. When an attachment path is
// set the body becomes multipart/mixed with the file base64-encoded.
func BuildMessage(from string, msg *Message, messageID string) ([]byte, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	b.WriteString(fmt.Sprintf("Message-ID: %s\r\n", messageID))
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.AttachmentPath == "" {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(msg.Body)
		return []byte(b.String()), nil
	}

	data, err := os.ReadFile(msg.AttachmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	filename := filepath.Base(msg.AttachmentPath)

	const boundary = "newsdesk-mixed-boundary"
	b.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n", boundary))
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString(fmt.Sprintf("Content-Type: text/markdown; name=%q\r\n", filename))
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n", filename))
	b.WriteString("\r\n")
	b.WriteString(wrapBase64(base64.StdEncoding.EncodeToString(data)))
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return []byte(b.String()), nil
}

// wrapBase64 folds encoded content at 76 columns per RFC 2045
func wrapBase64(encoded string) string {
	const width = 76
	var b strings.Builder
	for len(encoded) > width {
		b.WriteString(encoded[:width])
		b.WriteString("\r\n")
		encoded = encoded[width:]
	}
	b.WriteString(encoded)
	return b.String()
}

func (m *Mailer) generateMessageID(to string) string {
	local := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.Split(to, "@")[0])
	if len(local) > 10 {
		local = local[:10]
	}
	if local == "" {
		local = "user"
	}
	return fmt.Sprintf("<%d.%s@%s>", time.Now().UnixNano(), local, m.cfg.Host)
}

// sendWithStartTLS submits mail over an upgraded connection
func (m *Mailer) sendWithStartTLS(addr string, auth smtp.Auth, from string, to []string, raw []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.cfg.Host}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
