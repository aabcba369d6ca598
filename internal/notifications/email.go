// internal/notifications/email.go
// Email delivery providers. The provider is selected by configuration:
// "sendgrid" in production, "smtp" for self-hosted relays, "mock" for
// development.

package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	gomail "gopkg.in/gomail.v2"
)

// EmailProvider sends one HTML email.
type EmailProvider interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// SendGrid

type sendGridProvider struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridProvider(apiKey, from, fromName string) EmailProvider {
	return &sendGridProvider{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (p *sendGridProvider) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(p.fromName, p.from),
		subject,
		mail.NewEmail("", to),
		"",
		htmlBody,
	)

	resp, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

// SMTP

type smtpProvider struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPProvider(host string, port int, username, password, from, fromName string) EmailProvider {
	return &smtpProvider{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
	}
}

func (p *smtpProvider) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.from, p.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// Mock

type mockEmailProvider struct{}

func NewMockEmailProvider() EmailProvider {
	return &mockEmailProvider{}
}

func (p *mockEmailProvider) SendEmail(_ context.Context, to, subject, _ string) error {
	log.Printf("[mock email] to=%s subject=%q", to, subject)
	return nil
}
