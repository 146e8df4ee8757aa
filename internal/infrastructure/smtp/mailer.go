package smtp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/email-otp-api/internal/config"
	"github.com/email-otp-api/internal/domain"
	"github.com/email-otp-api/internal/pkg/id"
	"gopkg.in/gomail.v2"
)

// Mailer sends rendered HTML mail and returns an outbound message identifier.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) (messageID string, err error)
}

type mailer struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:    cfg.SMTPFrom,
		timeout: cfg.SMTPTimeout,
	}
}

// Send delivers the message within the configured timeout. SMTP gives us no
// server-assigned id, so the Message-ID header is generated here and returned
// as the delivery-confirmation token. A hung relay cannot stall the caller:
// the deadline converts it into ErrDeliveryFailed.
func (m *mailer) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", id.New(), fromDomain(m.from))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", htmlBody)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("send mail to %s: %v: %w", to, err, domain.ErrDeliveryFailed)
		}
		return messageID, nil
	case <-ctx.Done():
		return "", fmt.Errorf("send mail to %s: %v: %w", to, ctx.Err(), domain.ErrDeliveryFailed)
	}
}

func fromDomain(from string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return strings.TrimRight(from[i+1:], ">")
	}
	return "localhost"
}
