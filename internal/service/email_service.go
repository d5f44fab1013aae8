package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/model"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
	"github.com/vineetm1204-m/ODAutomation/pkg/mailer"
	"github.com/vineetm1204-m/ODAutomation/pkg/metrics"
)

var (
	ErrMailNotConfigured  = errors.New("Email service is not configured")
	ErrSendMissingFields  = apperrors.NewValidation("Missing required fields")
	ErrInvalidRecipient   = apperrors.NewValidation("Invalid recipient email address")
	ErrInvalidMailSubject = apperrors.NewValidation("Subject must be a single line")
)

const defaultSendTimeout = 10 * time.Second

// ── EmailService ───────────────────────────────────────────
//
// Send is a single verify-then-send attempt; there are no retries. Only
// delivery metadata (recipient, subject, message id, error code) is logged
// or stored, never the body or relay credentials.
// ─────────────────────────────────────────────────────────────

// EmailService composition and dispatch
type EmailService interface {
	// Generate composes from an explicit request body
	Generate(ctx context.Context, req *dto.GenerateEmailRequest) (*dto.GenerateEmailResponse, error)
	// GenerateFromForm composes from the session's form
	GenerateFromForm(ctx context.Context, sessionID string, req *dto.FormEmailRequest) (*dto.GenerateEmailResponse, error)
	// Send dispatches through the configured relay
	Send(ctx context.Context, req *dto.SendEmailRequest) (*dto.SendEmailResponse, error)
	// RecentDispatches newest first
	RecentDispatches(ctx context.Context, limit int) ([]model.DispatchLog, error)
}

type emailService struct {
	composer *Composer
	relay    mailer.Relay
	from     string
	timeout  time.Duration
	sessions *sessions
	logs     repository.DispatchLogRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// EmailOptions dispatch settings; a nil Relay disables sending
type EmailOptions struct {
	Relay   mailer.Relay
	From    string
	Timeout time.Duration
}

// NewEmailService creates an EmailService
func NewEmailService(repo *repository.Repository, layout form.Layout, composer *Composer, opts EmailOptions, m *metrics.Metrics, logger *zap.Logger) EmailService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &emailService{
		composer: composer,
		relay:    opts.Relay,
		from:     opts.From,
		timeout:  timeout,
		sessions: &sessions{repo: repo.Session, layout: layout},
		logs:     repo.DispatchLog,
		metrics:  m,
		logger:   logger,
	}
}

func (s *emailService) Generate(_ context.Context, req *dto.GenerateEmailRequest) (*dto.GenerateEmailResponse, error) {
	return s.compose(req.ToModel())
}

func (s *emailService) GenerateFromForm(ctx context.Context, sessionID string, req *dto.FormEmailRequest) (*dto.GenerateEmailResponse, error) {
	sess, err := s.sessions.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.compose(&model.EmailRequest{
		Coordinator:  req.Coordinator,
		Date:         req.Date,
		ClassSection: req.ClassSection,
		Subjects:     sess.Form.Snapshot(),
	})
}

func (s *emailService) compose(req *model.EmailRequest) (*dto.GenerateEmailResponse, error) {
	email, err := s.composer.Compose(req)
	if err != nil {
		s.metrics.EmailGenerated("invalid")
		return nil, err
	}
	s.metrics.EmailGenerated("ok")
	return &dto.GenerateEmailResponse{Success: true, Email: email.Body, Subject: email.Subject}, nil
}

// ════════════════════════════════════════════════════════════
// Send
// ════════════════════════════════════════════════════════════

func (s *emailService) Send(ctx context.Context, req *dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	to := strings.TrimSpace(req.To)
	subject := strings.TrimSpace(req.Subject)
	if to == "" || subject == "" || strings.TrimSpace(req.Body) == "" {
		return nil, ErrSendMissingFields
	}
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return nil, ErrInvalidRecipient
	}
	if strings.ContainsAny(subject, "\r\n") {
		return nil, ErrInvalidMailSubject
	}
	if s.relay == nil {
		return nil, ErrMailNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messageID, err := s.relay.Send(ctx, &mailer.Message{
		From:    s.from,
		To:      addr.Address,
		Subject: subject,
		Body:    req.Body,
	})
	if err != nil {
		err = mailer.Classify("send", err)
		var te *apperrors.TransportError
		errors.As(err, &te)

		s.logger.Warn("email dispatch failed",
			zap.String("relay", s.relay.Name()),
			zap.String("recipient", addr.Address),
			zap.String("subject", subject),
			zap.String("code", te.Code()),
			zap.String("op", te.Op),
		)
		s.metrics.Dispatched(s.relay.Name(), te.Code())
		s.record(ctx, &model.DispatchLog{
			Recipient: addr.Address,
			Subject:   subject,
			Relay:     s.relay.Name(),
			Status:    model.DispatchFailed,
			ErrorCode: te.Code(),
		})
		return nil, err
	}

	s.logger.Info("email sent",
		zap.String("relay", s.relay.Name()),
		zap.String("recipient", addr.Address),
		zap.String("subject", subject),
		zap.String("message_id", messageID),
	)
	s.metrics.Dispatched(s.relay.Name(), "ok")
	s.record(ctx, &model.DispatchLog{
		MessageID: messageID,
		Recipient: addr.Address,
		Subject:   subject,
		Relay:     s.relay.Name(),
		Status:    model.DispatchSent,
	})

	return &dto.SendEmailResponse{Success: true, MessageID: messageID}, nil
}

// record writes the dispatch log; errors are only logged
func (s *emailService) record(ctx context.Context, entry *model.DispatchLog) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	entry.CreatedAt = time.Now()
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record dispatch", zap.Error(err))
	}
}

func (s *emailService) RecentDispatches(ctx context.Context, limit int) ([]model.DispatchLog, error) {
	return s.logs.ListRecent(ctx, limit)
}
