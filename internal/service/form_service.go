package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
	"github.com/vineetm1204-m/ODAutomation/pkg/metrics"
)

// FormService session-scoped form editing. Every call loads the session,
// applies one change and stores it back; the returned view is the new state.
type FormService interface {
	Get(ctx context.Context, sessionID string) (*form.View, error)
	Reset(ctx context.Context, sessionID string) (*form.View, error)

	AddSubject(ctx context.Context, sessionID string) (*dto.CreatedResponse, error)
	UpdateSubject(ctx context.Context, sessionID string, id int, req *dto.UpdateSubjectRequest) (*form.View, error)
	RemoveSubject(ctx context.Context, sessionID string, id int) (*form.View, error)

	AddSection(ctx context.Context, sessionID string, subjectID int) (*dto.CreatedResponse, error)
	UpdateSection(ctx context.Context, sessionID string, id int, req *dto.UpdateSectionRequest) (*form.View, error)
	RemoveSection(ctx context.Context, sessionID string, id int) (*form.View, error)

	AddStudent(ctx context.Context, sessionID string, subjectID int) (*dto.CreatedResponse, error)
	AddSectionStudent(ctx context.Context, sessionID string, sectionID int) (*dto.CreatedResponse, error)
	UpdateStudent(ctx context.Context, sessionID string, id int, req *dto.UpdateStudentRequest) (*form.View, error)
	RemoveStudent(ctx context.Context, sessionID string, id int) (*form.View, error)

	// AutoFill rebuilds the form from the session's timetable
	AutoFill(ctx context.Context, sessionID string, req *dto.AutoFillRequest) (*dto.AutoFillResponse, error)
}

type formService struct {
	sessions  *sessions
	clearMode form.ClearMode
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewFormService creates a FormService
func NewFormService(repo *repository.Repository, layout form.Layout, clearMode form.ClearMode, m *metrics.Metrics, logger *zap.Logger) FormService {
	if clearMode != form.ClearAlways {
		clearMode = form.ClearOnMatch
	}
	return &formService{
		sessions:  &sessions{repo: repo.Session, layout: layout},
		clearMode: clearMode,
		metrics:   m,
		logger:    logger,
	}
}

// mutate loads the form, applies fn and saves. Nothing is saved when fn fails.
func (s *formService) mutate(ctx context.Context, sessionID string, fn func(f *form.Form) error) (*form.View, error) {
	sess, err := s.sessions.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess.Form); err != nil {
		return nil, err
	}
	if err := s.sessions.save(ctx, sess); err != nil {
		s.logger.Error("failed to save form", zap.Error(err))
		return nil, err
	}
	return sess.Form.View(), nil
}

func (s *formService) create(ctx context.Context, sessionID string, fn func(f *form.Form) (int, error)) (*dto.CreatedResponse, error) {
	var id int
	view, err := s.mutate(ctx, sessionID, func(f *form.Form) error {
		var err error
		id, err = fn(f)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreatedResponse{ID: id, Form: view}, nil
}

func (s *formService) Get(ctx context.Context, sessionID string) (*form.View, error) {
	sess, err := s.sessions.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Form.View(), nil
}

func (s *formService) Reset(ctx context.Context, sessionID string) (*form.View, error) {
	return s.mutate(ctx, sessionID, func(f *form.Form) error {
		f.Reset()
		return nil
	})
}

// ── Subjects ──

func (s *formService) AddSubject(ctx context.Context, sessionID string) (*dto.CreatedResponse, error) {
	return s.create(ctx, sessionID, func(f *form.Form) (int, error) {
		return f.AddSubject(), nil
	})
}

func (s *formService) UpdateSubject(ctx context.Context, sessionID string, id int, req *dto.UpdateSubjectRequest) (*form.View, error) {
	return s.mutate(ctx, sessionID, func(f *form.Form) error {
		return f.UpdateSubject(id, form.SubjectPatch{
			SubjectCode: req.SubjectCode,
			Faculty:     req.Faculty,
			Time:        req.Time,
		})
	})
}

func (s *formService) RemoveSubject(ctx context.Context, sessionID string, id int) (*form.View, error) {
	return s.mutate(ctx, sessionID, func(f *form.Form) error {
		f.RemoveSubject(id)
		return nil
	})
}

// ── Sections ──

func (s *formService) AddSection(ctx context.Context, sessionID string, subjectID int) (*dto.CreatedResponse, error) {
	return s.create(ctx, sessionID, func(f *form.Form) (int, error) {
		return f.AddSection(subjectID)
	})
}

func (s *formService) UpdateSection(ctx context.Context, sessionID string, id int, req *dto.UpdateSectionRequest) (*form.View, error) {
	return s.mutate(ctx, sessionID, func(f *form.Form) error {
		return f.UpdateSection(id, form.SectionPatch{
			ClassName:   req.ClassName,
			SectionName: req.SectionName,
		})
	})
}

func (s *formService) RemoveSection(ctx context.Context, sessionID string, id int) (*form.View, error) {
	return s.mutate(ctx, sessionID, func(f *form.Form) error {
		f.RemoveSection(id)
		return nil
	})
}

// ── Students ──

func (s *formService) AddStudent(ctx context.Context, sessionID string, subjectID int) (*dto.CreatedResponse, error) {
	return s.create(ctx, sessionID, func(f *form.Form) (int, error) {
		return f.AddStudent(subjectID)
	})
}

func (s *formService) AddSectionStudent(ctx context.Context, sessionID string, sectionID int) (*dto.CreatedResponse, error) {
	return s.create(ctx, sessionID, func(f *form.Form) (int, error) {
		return f.AddSectionStudent(sectionID)
	})
}

func (s *formService) UpdateStudent(ctx context.Context, sessionID string, id int, req *dto.UpdateStudentRequest) (*form.View, error) {
	return s.mutate(ctx, sessionID, func(f *form.Form) error {
		return f.UpdateStudent(id, req.Name)
	})
}

func (s *formService) RemoveStudent(ctx context.Context, sessionID string, id int) (*form.View, error) {
	return s.mutate(ctx, sessionID, func(f *form.Form) error {
		f.RemoveStudent(id)
		return nil
	})
}

// ════════════════════════════════════════════════════════════
// AutoFill
// ════════════════════════════════════════════════════════════
//
// In "always" mode a no-match still clears the form, so the session is
// saved on that error path too.

func (s *formService) AutoFill(ctx context.Context, sessionID string, req *dto.AutoFillRequest) (*dto.AutoFillResponse, error) {
	sess, err := s.sessions.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	n, fillErr := sess.Form.AutoFill(sess.Timetable, req.Day, req.Time, s.clearMode)
	switch {
	case fillErr == nil:
		s.metrics.AutoFilled("matched")
	case errors.Is(fillErr, form.ErrNoMatch):
		s.metrics.AutoFilled("no_match")
		if s.clearMode != form.ClearAlways {
			return nil, fillErr
		}
	default:
		s.metrics.AutoFilled("missing_selector")
		return nil, fillErr
	}

	if err := s.sessions.save(ctx, sess); err != nil {
		s.logger.Error("failed to save form", zap.Error(err))
		return nil, err
	}
	if fillErr != nil {
		return nil, fillErr
	}

	s.logger.Debug("form auto-filled",
		zap.String("day", req.Day),
		zap.String("time", req.Time),
		zap.Int("subjects", n),
	)
	return &dto.AutoFillResponse{Success: true, Count: n, Form: sess.Form.View()}, nil
}
