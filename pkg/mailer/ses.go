package mailer

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/vineetm1204-m/ODAutomation/config"
)

// sesAPI is the part of *sesv2.Client the relay uses
type sesAPI interface {
	GetAccount(ctx context.Context, params *sesv2.GetAccountInput, optFns ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error)
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESRelay sends through Amazon SES v2. Credentials come from the default
// AWS chain (env, shared config, instance role).
type SESRelay struct {
	client sesAPI
	from   string
}

// NewSESRelay loads AWS config for the configured region
func NewSESRelay(ctx context.Context, cfg *config.MailConfig) (*SESRelay, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SESRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESRelay{client: sesv2.NewFromConfig(awsCfg), from: cfg.From}, nil
}

// Name returns "ses"
func (r *SESRelay) Name() string { return config.RelaySES }

// Verify calls GetAccount, which fails on bad credentials or region
func (r *SESRelay) Verify(ctx context.Context) error {
	_, err := r.client.GetAccount(ctx, &sesv2.GetAccountInput{})
	return Classify("verify", err)
}

// Send verifies, then delivers msg as a simple text email
func (r *SESRelay) Send(ctx context.Context, msg *Message) (string, error) {
	if err := r.Verify(ctx); err != nil {
		return "", err
	}

	from := msg.From
	if from == "" {
		from = r.from
	}
	subject, body := msg.Subject, msg.Body

	out, err := r.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body:    &types.Body{Text: &types.Content{Data: &body}},
			},
		},
	})
	if err != nil {
		return "", Classify("send", err)
	}
	if out.MessageId == nil {
		return "", nil
	}
	return *out.MessageId, nil
}
