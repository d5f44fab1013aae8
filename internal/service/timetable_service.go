package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
	"github.com/vineetm1204-m/ODAutomation/pkg/metrics"
)

var ErrTimetableTemplateFailed = errors.New("Failed to generate the timetable template")

// ── TimetableService ───────────────────────────────────────
//
// An upload fully replaces the session's timetable, with no merging. A file
// that reads fine but yields no rows still replaces it (with nothing) and
// reports ErrTimetableNoValidEntries. Unreadable files leave the stored
// timetable untouched.
// ─────────────────────────────────────────────────────────────

// TimetableService timetable ingest and lookup
type TimetableService interface {
	// Import parses an uploaded file and stores its entries on the session
	Import(ctx context.Context, sessionID, filename string, r io.Reader) (*dto.UploadTimetableResponse, error)
	// List returns the session's stored entries
	List(ctx context.Context, sessionID string) (*dto.TimetableResponse, error)
	// Slots returns the distinct days and times of the stored entries
	Slots(ctx context.Context, sessionID string) (*dto.TimetableSlotsResponse, error)
	// Template builds an XLSX file with the expected header row
	Template() (*bytes.Buffer, string, error)
}

type timetableService struct {
	sessions *sessions
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewTimetableService creates a TimetableService
func NewTimetableService(repo *repository.Repository, layout form.Layout, m *metrics.Metrics, logger *zap.Logger) TimetableService {
	return &timetableService{
		sessions: &sessions{repo: repo.Session, layout: layout},
		metrics:  m,
		logger:   logger,
	}
}

func (s *timetableService) Import(ctx context.Context, sessionID, filename string, r io.Reader) (*dto.UploadTimetableResponse, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		s.metrics.TimetableUploaded("unknown", "unsupported", 0)
		return nil, err
	}

	entries, err := ParseTimetable(format, r)
	if err != nil {
		s.logger.Warn("timetable unreadable", zap.String("format", format), zap.Error(err))
		s.metrics.TimetableUploaded(format, "read_failure", 0)
		return nil, err
	}

	sess, err := s.sessions.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Timetable = entries
	if err := s.sessions.save(ctx, sess); err != nil {
		s.logger.Error("failed to store timetable", zap.Error(err))
		return nil, err
	}

	s.logger.Info("timetable imported",
		zap.String("format", format),
		zap.Int("entries", len(entries)),
	)

	if len(entries) == 0 {
		s.metrics.TimetableUploaded(format, "empty", 0)
		return nil, ErrTimetableNoValidEntries
	}
	s.metrics.TimetableUploaded(format, "ok", len(entries))

	return &dto.UploadTimetableResponse{
		Success: true,
		Data:    entries,
		Count:   len(entries),
	}, nil
}

func (s *timetableService) List(ctx context.Context, sessionID string) (*dto.TimetableResponse, error) {
	sess, err := s.sessions.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.TimetableResponse{Entries: sess.Timetable, Count: len(sess.Timetable)}, nil
}

func (s *timetableService) Slots(ctx context.Context, sessionID string) (*dto.TimetableSlotsResponse, error) {
	sess, err := s.sessions.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := &dto.TimetableSlotsResponse{Days: []string{}, Times: []string{}}
	seenDay := make(map[string]bool)
	seenTime := make(map[string]bool)
	for _, e := range sess.Timetable {
		if !seenDay[e.Day] {
			seenDay[e.Day] = true
			resp.Days = append(resp.Days, e.Day)
		}
		if !seenTime[e.Time] {
			seenTime[e.Time] = true
			resp.Times = append(resp.Times, e.Time)
		}
	}
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// Template builds an XLSX with the header and one example row
// ════════════════════════════════════════════════════════════

const templateSheet = "Timetable"

func (s *timetableService) Template() (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		s.logger.Error("template sheet rename failed", zap.Error(err))
		return nil, "", ErrTimetableTemplateFailed
	}

	header := []interface{}{"Day", "Time", "Subject", "Faculty"}
	example := []interface{}{"Monday", form.DefaultTimeSlots[0], "CS101 - Operating Systems", "Dr. Rao"}
	if err := f.SetSheetRow(templateSheet, "A1", &header); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrTimetableTemplateFailed, err)
	}
	if err := f.SetSheetRow(templateSheet, "A2", &example); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrTimetableTemplateFailed, err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	f.SetCellStyle(templateSheet, "A1", "D1", headerStyle)
	f.SetColWidth(templateSheet, "A", "A", 14)
	f.SetColWidth(templateSheet, "B", "B", 24)
	f.SetColWidth(templateSheet, "C", "D", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("template write failed", zap.Error(err))
		return nil, "", ErrTimetableTemplateFailed
	}
	return buf, "timetable_template.xlsx", nil
}
