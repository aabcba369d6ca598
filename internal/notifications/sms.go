// internal/notifications/sms.go

package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSProvider sends one SMS.
type SMSProvider interface {
	SendSMS(ctx context.Context, to, body string) error
}

type twilioProvider struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioProvider(accountSID, authToken, from string) SMSProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &twilioProvider{client: client, from: from}
}

func (p *twilioProvider) SendSMS(_ context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(p.from)
	params.SetBody(body)

	if _, err := p.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}

type mockSMSProvider struct{}

func NewMockSMSProvider() SMSProvider {
	return &mockSMSProvider{}
}

func (p *mockSMSProvider) SendSMS(_ context.Context, to, body string) error {
	log.Printf("[mock sms] to=%s body=%q", to, body)
	return nil
}
