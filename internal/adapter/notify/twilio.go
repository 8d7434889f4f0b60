package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioNotifier sends SMS through Twilio. Outside production it skips
// delivery and reports StatusSkippedByPolicy so development runs never text
// real phones.
type TwilioNotifier struct {
	client      *twilio.RestClient
	fromNumber  string
	environment string
}

// NewTwilioNotifier creates a Twilio-backed notifier.
func NewTwilioNotifier(accountSID, authToken, fromNumber, environment string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{
		client:      client,
		fromNumber:  fromNumber,
		environment: environment,
	}
}

// VideoReady sends the download link over SMS.
func (n *TwilioNotifier) VideoReady(ctx context.Context, phone, link string) Result {
	body := fmt.Sprintf("Here is the link to your BeReal Wrapped!\n\n%s", link)

	if n.environment != "production" {
		return Result{Status: StatusSkippedByPolicy, Reason: "non-production environment"}
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(n.fromNumber)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		return Result{Status: StatusFailed, Reason: err.Error()}
	}
	return Result{Status: StatusSent}
}
