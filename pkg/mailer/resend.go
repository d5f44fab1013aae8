package mailer

import (
	"context"
	"errors"

	"github.com/resend/resend-go/v2"

	"github.com/vineetm1204-m/ODAutomation/config"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
)

// ResendRelay sends through the Resend HTTP API
type ResendRelay struct {
	client *resend.Client
	apiKey string
	from   string
}

// NewResendRelay creates a Resend relay from mail config
func NewResendRelay(cfg *config.MailConfig) *ResendRelay {
	r := &ResendRelay{apiKey: cfg.ResendAPIKey, from: cfg.From}
	if cfg.ResendAPIKey != "" {
		r.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return r
}

// Name returns "resend"
func (r *ResendRelay) Name() string { return config.RelayResend }

// Verify Resend has no handshake; a configured key is all we can check up front
func (r *ResendRelay) Verify(ctx context.Context) error {
	if r.client == nil || r.apiKey == "" {
		return &apperrors.TransportError{
			Kind: apperrors.TransportAuth,
			Op:   "verify",
			Err:  errors.New("resend api key is not configured"),
		}
	}
	return Classify("verify", ctx.Err())
}

// Send delivers msg with a single API call
func (r *ResendRelay) Send(ctx context.Context, msg *Message) (string, error) {
	if err := r.Verify(ctx); err != nil {
		return "", err
	}

	from := msg.From
	if from == "" {
		from = r.from
	}

	result, err := r.client.Emails.Send(&resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Body,
	})
	if err != nil {
		return "", Classify("send", err)
	}
	return result.Id, nil
}
