package mailer

import (
	"context"
	"errors"
	"io"
	"net"
	"net/textproto"
	"os"
	"strings"
	"syscall"

	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
)

// Classify wraps a relay error into a categorized TransportError. Errors
// that are already categorized pass through unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *apperrors.TransportError
	if errors.As(err, &te) {
		return err
	}
	return &apperrors.TransportError{Kind: kindOf(err), Op: op, Err: err}
}

func kindOf(err error) apperrors.TransportKind {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535, 538:
			return apperrors.TransportAuth
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return apperrors.TransportTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apperrors.TransportConnection
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return apperrors.TransportConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return apperrors.TransportConnection
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, net.ErrClosed) || opErr != nil {
		return apperrors.TransportSocket
	}

	// API relays (Resend, SES) report credential problems only in the message
	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"auth", "api key", "unauthorized", "forbidden", "invalidclienttokenid", "signaturedoesnotmatch", "unrecognizedclient"} {
		if strings.Contains(msg, hint) {
			return apperrors.TransportAuth
		}
	}

	return apperrors.TransportSend
}
