package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/model"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
	"github.com/vineetm1204-m/ODAutomation/pkg/mailer"
)

// ── Test repository ──

func newTestRepo() *repository.Repository {
	return repository.NewRepository(repository.Options{Logger: zap.NewNop()})
}

// ── Mock Relay ──

type mockRelay struct {
	mu        sync.Mutex
	sent      []*mailer.Message
	messageID string
	err       error
}

func (m *mockRelay) Name() string { return "mock" }

func (m *mockRelay) Verify(_ context.Context) error { return m.err }

func (m *mockRelay) Send(_ context.Context, msg *mailer.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, msg)
	return m.messageID, nil
}

// ── Mock DispatchLogRepository ──

type failingDispatchLogRepo struct{}

func (failingDispatchLogRepo) Create(_ context.Context, _ *model.DispatchLog) error {
	return errors.New("db down")
}

func (failingDispatchLogRepo) ListRecent(_ context.Context, _ int) ([]model.DispatchLog, error) {
	return nil, errors.New("db down")
}

// ── Mock ReferenceRepository ──

type failingReferenceRepo struct{}

func (failingReferenceRepo) ListFaculty(_ context.Context) ([]model.Faculty, error) {
	return nil, errors.New("db down")
}

func (failingReferenceRepo) ListSubjects(_ context.Context) ([]model.Subject, error) {
	return nil, errors.New("db down")
}

func (failingReferenceRepo) CreateFaculty(_ context.Context, _ *model.Faculty) error {
	return errors.New("db down")
}

func (failingReferenceRepo) CreateSubject(_ context.Context, _ *model.Subject) error {
	return errors.New("db down")
}
