package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/config"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/model"
	"github.com/vineetm1204-m/ODAutomation/internal/service"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
	applogger "github.com/vineetm1204-m/ODAutomation/pkg/logger"
	"github.com/vineetm1204-m/ODAutomation/pkg/mailer"
)

// ── slots ──

func newSlotsCmd() *cobra.Command {
	var timetable string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the days and time slots found in a timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadTimetable(timetable)
			if err != nil {
				return err
			}
			days, times := distinctSlots(entries)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d entries\n", len(entries))
			fmt.Fprintf(out, "days:  %s\n", strings.Join(days, ", "))
			fmt.Fprintf(out, "times: %s\n", strings.Join(times, ", "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&timetable, "timetable", "t", "", "timetable file (.csv, .xlsx, .ics)")
	_ = cmd.MarkFlagRequired("timetable")
	return cmd
}

// ── generate ──

type generateOptions struct {
	timetable    string
	day          string
	slot         string
	coordinator  string
	date         string
	classSection string
	students     []string
}

func newGenerateCmd(configPath *string) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Auto-fill subjects from a timetable slot and print the email",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			email, err := generate(cfg, &opts, zap.NewNop())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Subject: %s\n\n%s", email.Subject, email.Body)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.timetable, "timetable", "t", "", "timetable file (.csv, .xlsx, .ics)")
	f.StringVar(&opts.day, "day", "", "weekday to match, e.g. Monday")
	f.StringVar(&opts.slot, "time", "", "time slot to match, e.g. \"9:00 AM - 10:00 AM\"")
	f.StringVar(&opts.coordinator, "coordinator", "", "coordinator the email is addressed to")
	f.StringVar(&opts.date, "date", time.Now().Format("2006-01-02"), "OD date (YYYY-MM-DD)")
	f.StringVar(&opts.classSection, "class-section", "", "class and section, e.g. \"CSE A\"")
	f.StringSliceVar(&opts.students, "students", nil, "student names, comma separated")
	for _, name := range []string{"timetable", "day", "time", "coordinator"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func generate(cfg *config.Config, opts *generateOptions, logger *zap.Logger) (*service.Email, error) {
	entries, err := loadTimetable(opts.timetable)
	if err != nil {
		return nil, err
	}

	f := form.New(form.Layout(cfg.Feature.FormLayout))
	if _, err := f.AutoFill(entries, opts.day, opts.slot, form.ClearOnMatch); err != nil {
		return nil, err
	}

	subjects := f.Snapshot()
	if len(opts.students) > 0 {
		names := make([]string, 0, len(opts.students))
		for _, s := range opts.students {
			if s = strings.TrimSpace(s); s != "" {
				names = append(names, s)
			}
		}
		for i := range subjects {
			subjects[i].Students = names
			subjects[i].Sections = nil
		}
	}

	composer := service.NewComposerFromConfig(cfg, logger)
	return composer.Compose(&model.EmailRequest{
		Coordinator:  opts.coordinator,
		Date:         opts.date,
		ClassSection: opts.classSection,
		Subjects:     subjects,
	})
}

// ── send ──

func newSendCmd(configPath *string) *cobra.Command {
	var to, subject, bodyFile string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email body (file or stdin) through the configured relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadWithLogger(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			body, err := readBody(bodyFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			relay, err := mailer.New(cmd.Context(), &cfg.Mail)
			if err != nil {
				return err
			}
			if relay == nil {
				return service.ErrMailNotConfigured
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), sendTimeout(cfg))
			defer cancel()

			id, err := relay.Send(ctx, &mailer.Message{From: cfg.Mail.From, To: to, Subject: subject, Body: body})
			if err != nil {
				return describeTransport(err)
			}
			logger.Info("email sent", zap.String("relay", relay.Name()), zap.String("to", to), zap.String("message_id", id))
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&to, "to", "", "recipient address")
	f.StringVarP(&subject, "subject", "s", "", "subject line")
	f.StringVarP(&bodyFile, "body", "b", "-", "body file, - for stdin")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

// ── verify ──

func newVerifyCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the configured relay accepts our connection and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadWithLogger(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			relay, err := mailer.New(cmd.Context(), &cfg.Mail)
			if err != nil {
				return err
			}
			if relay == nil {
				return service.ErrMailNotConfigured
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), sendTimeout(cfg))
			defer cancel()
			if err := relay.Verify(ctx); err != nil {
				return describeTransport(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s relay OK\n", relay.Name())
			return nil
		},
	}
}

// ── helpers ──

func loadTimetable(path string) ([]model.TimetableEntry, error) {
	format, err := service.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	entries, err := service.ParseTimetable(format, file)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), service.ErrTimetableNoValidEntries)
	}
	return entries, nil
}

func distinctSlots(entries []model.TimetableEntry) (days, times []string) {
	seenDay := map[string]bool{}
	seenTime := map[string]bool{}
	for _, e := range entries {
		if !seenDay[e.Day] {
			seenDay[e.Day] = true
			days = append(days, e.Day)
		}
		if !seenTime[e.Time] {
			seenTime[e.Time] = true
			times = append(times, e.Time)
		}
	}
	return days, times
}

func loadWithLogger(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func readBody(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "" || path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", errors.New("email body is empty")
	}
	return string(b), nil
}

func sendTimeout(cfg *config.Config) time.Duration {
	if cfg.Mail.Timeout > 0 {
		return cfg.Mail.Timeout
	}
	return 10 * time.Second
}

// describeTransport prefixes relay failures with their category code
func describeTransport(err error) error {
	var te *apperrors.TransportError
	if errors.As(err, &te) {
		return fmt.Errorf("%s: %s (%w)", te.Code(), te.Message(), err)
	}
	return err
}
