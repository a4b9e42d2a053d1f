// Package notify is the outbound-email collaborator. The core hands it
// plain data and never depends on how delivery happens; a send failure is
// logged by the caller and must not affect any transactional outcome.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, plainBody string) error
}

type SendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, toEmail, toName, subject, plainBody string) error {
	const op = "notify.SendGridMailer.Send"

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plainBody, "")

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: sendgrid status %d: %s", op, resp.StatusCode, resp.Body)
	}

	return nil
}

// LogMailer is the fallback when no SendGrid key is configured: it logs the
// message instead of delivering it.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, toEmail, _ string, subject, _ string) error {
	m.logger.Info("mail suppressed, no sender configured", "to", toEmail, "subject", subject)
	return nil
}
