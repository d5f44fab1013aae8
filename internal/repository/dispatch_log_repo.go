package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/vineetm1204-m/ODAutomation/internal/model"
)

const defaultDispatchLogCap = 500

// DispatchLogRepository delivery metadata for send attempts
type DispatchLogRepository interface {
	Create(ctx context.Context, entry *model.DispatchLog) error
	// ListRecent newest first
	ListRecent(ctx context.Context, limit int) ([]model.DispatchLog, error)
}

// dispatchLogRepo DispatchLogRepository backed by postgres
type dispatchLogRepo struct {
	db *gorm.DB
}

// NewDispatchLogRepo creates the GORM DispatchLogRepository
func NewDispatchLogRepo(db *gorm.DB) DispatchLogRepository {
	return &dispatchLogRepo{db: db}
}

func (r *dispatchLogRepo) Create(ctx context.Context, entry *model.DispatchLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *dispatchLogRepo) ListRecent(ctx context.Context, limit int) ([]model.DispatchLog, error) {
	logs := []model.DispatchLog{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// memoryDispatchLogRepo keeps the newest cap entries
type memoryDispatchLogRepo struct {
	mu     sync.Mutex
	cap    int
	nextID uint
	logs   []model.DispatchLog
}

// NewMemoryDispatchLogRepo creates an in-memory DispatchLogRepository
func NewMemoryDispatchLogRepo(capacity int) DispatchLogRepository {
	if capacity <= 0 {
		capacity = defaultDispatchLogCap
	}
	return &memoryDispatchLogRepo{cap: capacity}
}

func (r *memoryDispatchLogRepo) Create(_ context.Context, entry *model.DispatchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = r.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.logs = append(r.logs, *entry)
	if len(r.logs) > r.cap {
		r.logs = r.logs[len(r.logs)-r.cap:]
	}
	return nil
}

func (r *memoryDispatchLogRepo) ListRecent(_ context.Context, limit int) ([]model.DispatchLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 || limit > len(r.logs) {
		limit = len(r.logs)
	}
	out := make([]model.DispatchLog, 0, limit)
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.logs[i])
	}
	return out, nil
}
