package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"

	"github.com/sparclabs/sparc/internal/models"
)

// EmailAdapter sends content over SMTP with STARTTLS and PLAIN auth.
type EmailAdapter struct {
	host     string
	port     int
	from     string
	username string
	password string
	logger   *slog.Logger

	// sendMail is swappable for tests
	sendMail func(addr string, a sasl.Client, from string, to []string, r *bytes.Reader) error
}

// NewEmailAdapter creates a new email adapter
func NewEmailAdapter(host string, port int, from, username, password string, logger *slog.Logger) *EmailAdapter {
	return &EmailAdapter{
		host:     host,
		port:     port,
		from:     from,
		username: username,
		password: password,
		logger:   logger.With("component", "email"),
		sendMail: func(addr string, a sasl.Client, from string, to []string, r *bytes.Reader) error {
			return smtp.SendMail(addr, a, from, to, r)
		},
	}
}

// Deliver sends the delivery body to its recipients in a single attempt and
// returns the generated Message-ID.
func (a *EmailAdapter) Deliver(ctx context.Context, d *Delivery) (string, error) {
	if a.host == "" {
		return "", &DeliveryError{Platform: models.PlatformEmail, Message: "smtp server not configured"}
	}
	if len(d.Recipients) == 0 {
		return "", &DeliveryError{Platform: models.PlatformEmail, Message: "no recipients"}
	}

	subject := d.Subject
	if subject == "" {
		subject = "New Campaign Update"
	}

	msgID := fmt.Sprintf("<%s@%s>", uuid.New().String(), a.host)
	data := buildMessage(a.from, d.Recipients, subject, d.Text, msgID)

	var auth sasl.Client
	if a.username != "" {
		auth = sasl.NewPlainClient("", a.username, a.password)
	}

	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	if err := a.sendMail(addr, auth, a.from, d.Recipients, bytes.NewReader(data)); err != nil {
		return "", &DeliveryError{Platform: models.PlatformEmail, Message: err.Error()}
	}

	a.logger.Info("email sent", "recipients", len(d.Recipients), "message_id", msgID)
	return msgID, nil
}

// buildMessage assembles an RFC 5322 message
func buildMessage(from string, to []string, subject, body, msgID string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	buf.WriteString(fmt.Sprintf("Message-ID: %s\r\n", msgID))
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	return buf.Bytes()
}
