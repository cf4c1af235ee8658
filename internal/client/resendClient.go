package client

import (
	"apostila-pix-store/internal/config"
	"context"
	"fmt"

	"github.com/resendlabs/resend-go"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type Email struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers transactional email. Configured reports false when no
// credentials were provided, in which case callers skip sending.
type Mailer interface {
	Configured() bool
	Send(ctx context.Context, email *Email) error
}

type resendMailerImpl struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

func NewResendMailer(cfg *config.Email) Mailer {
	m := &resendMailerImpl{
		fromEmail: cfg.From,
		fromName:  cfg.FromName,
	}
	if cfg.APIKey != "" {
		m.client = resend.NewClient(cfg.APIKey)
	}
	return m
}

func (m *resendMailerImpl) Configured() bool {
	return m.client != nil && m.fromEmail != ""
}

func (m *resendMailerImpl) Send(ctx context.Context, email *Email) error {
	if !m.Configured() {
		return fmt.Errorf("email relay is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	attachments := make([]resend.Attachment, len(email.Attachments))
	for i, a := range email.Attachments {
		attachments[i] = resend.Attachment{
			Filename: a.Filename,
			Content:  string(a.Content),
		}
	}

	params := &resend.SendEmailRequest{
		From:        fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail),
		To:          []string{email.To},
		Subject:     email.Subject,
		Html:        email.HTML,
		Attachments: attachments,
	}

	_, err := m.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("send email via resend: %w", err)
	}

	return nil
}
