package mailer

import (
	"context"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/vineetm1204-m/ODAutomation/config"
)

// dialer is the slice of *gomail.Dialer the relay needs; swapped in tests
type dialer interface {
	Dial() (gomail.SendCloser, error)
}

// SMTPRelay sends through an SMTP server with gomail. Port 465 uses implicit
// TLS, anything else upgrades with STARTTLS when the server offers it.
type SMTPRelay struct {
	dialer  dialer
	from    string
	timeout time.Duration
}

// NewSMTPRelay creates an SMTP relay from mail config
func NewSMTPRelay(cfg *config.MailConfig) *SMTPRelay {
	return &SMTPRelay{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:    cfg.From,
		timeout: cfg.Timeout,
	}
}

// Name returns "smtp"
func (r *SMTPRelay) Name() string { return config.RelaySMTP }

// Verify dials and authenticates, then closes the connection
func (r *SMTPRelay) Verify(ctx context.Context) error {
	sc, err := r.dial(ctx)
	if err != nil {
		return Classify("verify", err)
	}
	return Classify("verify", sc.Close())
}

// Send opens a verified connection and delivers msg over it
func (r *SMTPRelay) Send(ctx context.Context, msg *Message) (string, error) {
	sc, err := r.dial(ctx)
	if err != nil {
		return "", Classify("verify", err)
	}
	defer sc.Close()

	from := msg.From
	if from == "" {
		from = r.from
	}
	messageID := newMessageID(from)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)
	m.SetDateHeader("Date", time.Now())
	m.SetBody("text/plain", msg.Body)

	if err := gomail.Send(sc, m); err != nil {
		return "", Classify("send", err)
	}
	return messageID, nil
}

type dialResult struct {
	sc  gomail.SendCloser
	err error
}

// dial runs the blocking gomail dial under ctx (and the configured timeout)
func (r *SMTPRelay) dial(ctx context.Context) (gomail.SendCloser, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ch := make(chan dialResult, 1)
	go func() {
		sc, err := r.dialer.Dial()
		ch <- dialResult{sc: sc, err: err}
	}()

	select {
	case res := <-ch:
		return res.sc, res.err
	case <-ctx.Done():
		// close the connection if the dial completes after we gave up
		go func() {
			if res := <-ch; res.sc != nil {
				res.sc.Close()
			}
		}()
		return nil, ctx.Err()
	}
}
