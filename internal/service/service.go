package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/config"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
	"github.com/vineetm1204-m/ODAutomation/pkg/mailer"
	"github.com/vineetm1204-m/ODAutomation/pkg/metrics"
)

// Service aggregates every service the handlers use
type Service struct {
	Timetable TimetableService
	Form      FormService
	Email     EmailService
	Reference ReferenceService
}

// NewService wires services from config. relay may be nil (mail disabled);
// m may be nil (no metrics).
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	relay mailer.Relay,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	layout := form.Layout(cfg.Feature.FormLayout)

	return &Service{
		Timetable: NewTimetableService(repo, layout, m, logger),
		Form:      NewFormService(repo, layout, form.ClearMode(cfg.Feature.AutoFillClearMode), m, logger),
		Email: NewEmailService(repo, layout, NewComposerFromConfig(cfg, logger), EmailOptions{
			Relay:   relay,
			From:    cfg.Mail.From,
			Timeout: cfg.Mail.Timeout,
		}, m, logger),
		Reference: NewReferenceService(repo, logger),
	}
}

// NewComposerFromConfig builds the composer for the email section; an
// unknown timezone falls back to the host zone
func NewComposerFromConfig(cfg *config.Config, logger *zap.Logger) *Composer {
	loc := time.Local
	if cfg.Email.Timezone != "" {
		l, err := time.LoadLocation(cfg.Email.Timezone)
		if err != nil {
			logger.Warn("unknown email timezone, using local time",
				zap.String("timezone", cfg.Email.Timezone), zap.Error(err))
		} else {
			loc = l
		}
	}
	return NewComposer(cfg.Email.Signature, loc, cfg.Feature.RequireClassSection)
}
