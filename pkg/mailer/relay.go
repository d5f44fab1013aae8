// Package mailer delivers composed OD emails through one configured relay.
//
// Every relay verifies its connection (or credentials) before a send and
// makes exactly one delivery attempt. Failures come back as
// *errors.TransportError with an auth/connection/timeout/socket category.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vineetm1204-m/ODAutomation/config"
)

// Message a plain-text email
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Relay delivers messages
type Relay interface {
	// Name relay identifier (smtp, resend, ses)
	Name() string
	// Verify checks the relay is reachable and accepts our credentials
	Verify(ctx context.Context) error
	// Send verifies, then makes a single delivery attempt and returns the
	// message id
	Send(ctx context.Context, msg *Message) (string, error)
}

// New builds the relay selected by cfg.Relay. Returns (nil, nil) when mail
// is disabled.
func New(ctx context.Context, cfg *config.MailConfig) (Relay, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Relay {
	case config.RelaySMTP:
		return NewSMTPRelay(cfg), nil
	case config.RelayResend:
		return NewResendRelay(cfg), nil
	case config.RelaySES:
		r, err := NewSESRelay(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown mail relay %q", cfg.Relay)
	}
}

// newMessageID builds an RFC 5322 Message-ID on the sender's domain
func newMessageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = strings.TrimRight(from[at+1:], ">")
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
