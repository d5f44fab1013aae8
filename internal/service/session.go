package service

import (
	"context"
	"errors"

	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/model"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
)

// ErrSessionRequired request reached a session-scoped operation without a session id
var ErrSessionRequired = errors.New("session id is required")

// sessions loads and creates per-browser state
type sessions struct {
	repo   repository.SessionRepository
	layout form.Layout
}

// load returns the stored session or a fresh one holding a single empty
// subject, which is what a newly opened form shows
func (s *sessions) load(ctx context.Context, id string) (*repository.Session, error) {
	if id == "" {
		return nil, ErrSessionRequired
	}
	sess, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return s.fresh(id), nil
	}
	if err != nil {
		return nil, err
	}
	if sess.Form == nil {
		sess.Form = s.newForm()
	}
	if sess.Timetable == nil {
		sess.Timetable = []model.TimetableEntry{}
	}
	return sess, nil
}

func (s *sessions) save(ctx context.Context, sess *repository.Session) error {
	return s.repo.Save(ctx, sess)
}

func (s *sessions) fresh(id string) *repository.Session {
	return &repository.Session{
		ID:        id,
		Timetable: []model.TimetableEntry{},
		Form:      s.newForm(),
	}
}

func (s *sessions) newForm() *form.Form {
	f := form.New(s.layout)
	f.AddSubject()
	return f
}
