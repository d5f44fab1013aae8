package repository

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vineetm1204-m/ODAutomation/pkg/redis"
)

// Repository aggregates every repository the services use
type Repository struct {
	Reference   ReferenceRepository
	DispatchLog DispatchLogRepository
	Session     SessionRepository
}

// Options backing stores; nil stores fall back to in-process implementations
type Options struct {
	DB         *gorm.DB
	Redis      *redis.Client
	StaticDir  string
	SessionTTL time.Duration
	Logger     *zap.Logger
}

// NewRepository picks an implementation per repository:
//   - reference data: postgres → JSON files in the static dir → memory
//   - dispatch log:   postgres → memory
//   - sessions:       redis → memory
func NewRepository(opts Options) *Repository {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Repository{}

	switch {
	case opts.DB != nil:
		r.Reference = NewReferenceRepo(opts.DB)
	case opts.StaticDir != "":
		r.Reference = NewFileReferenceRepo(opts.StaticDir, logger)
	default:
		r.Reference = NewMemoryReferenceRepo(nil, nil)
	}

	if opts.DB != nil {
		r.DispatchLog = NewDispatchLogRepo(opts.DB)
	} else {
		r.DispatchLog = NewMemoryDispatchLogRepo(defaultDispatchLogCap)
	}

	if opts.Redis != nil {
		r.Session = NewRedisSessionRepo(opts.Redis, opts.SessionTTL)
	} else {
		r.Session = NewMemorySessionRepo(opts.SessionTTL)
	}

	return r
}
