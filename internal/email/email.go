package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/projecthub/internal/metrics"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

type Kind string

const (
	KindOTP      Kind = "otp"
	KindInvite   Kind = "invite"
	KindReminder Kind = "reminder"
)

type Message struct {
	Kind    Kind
	To      string
	Subject string
	HTML    string
}

// Receipt identifies an accepted message at the provider.
type Receipt struct {
	MessageID string `json:"messageId"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// LogSender logs emails instead of sending them. Used when ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	id := "local-" + uuid.NewString()
	s.logger.InfoContext(ctx, "email (local dev)",
		"kind", msg.Kind, "to", msg.To, "subject", msg.Subject, "message_id", id, "body", msg.HTML)
	return Receipt{MessageID: id}, nil
}

// ResendSender sends emails via the Resend API. Used outside local.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return Receipt{}, fmt.Errorf("send email: %w", err)
	}
	return Receipt{MessageID: sent.Id}, nil
}

type countingSender struct {
	inner Sender
}

func (s countingSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	r, err := s.inner.Send(ctx, msg)
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	metrics.EmailsSentTotal.WithLabelValues(string(msg.Kind), outcome).Inc()
	return r, err
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
// Both are wrapped so every attempt is counted.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return countingSender{inner: &LogSender{logger: logger.With("component", "email")}}
	}
	return countingSender{inner: &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}}
}
