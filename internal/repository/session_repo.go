package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/model"
	"github.com/vineetm1204-m/ODAutomation/pkg/redis"
)

const (
	defaultSessionTTL = 24 * time.Hour
	sessionKeyPrefix  = "odmail:session:"
)

// ErrSessionNotFound no state stored for the session id (new or expired)
var ErrSessionNotFound = errors.New("session not found")

// Session everything one browser session owns: the last uploaded timetable
// and the form being edited
type Session struct {
	ID        string                 `json:"id"`
	Timetable []model.TimetableEntry `json:"timetable"`
	Form      *form.Form             `json:"form"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// SessionRepository per-session state. Get returns a private copy; callers
// mutate it and Save it back.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// ── In-memory ──

type memoryEntry struct {
	data    []byte
	expires time.Time
}

type memorySessionRepo struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

// NewMemorySessionRepo creates an in-process SessionRepository. Sessions are
// stored encoded so concurrent requests never share a Form.
func NewMemorySessionRepo(ttl time.Duration) SessionRepository {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &memorySessionRepo{ttl: ttl, now: time.Now, sessions: make(map[string]memoryEntry)}
}

func (r *memorySessionRepo) Get(_ context.Context, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if r.now().After(e.expires) {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	var s Session
	if err := json.Unmarshal(e.data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *memorySessionRepo) Save(_ context.Context, s *Session) error {
	now := r.now()
	s.UpdatedAt = now
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = memoryEntry{data: b, expires: now.Add(r.ttl)}
	r.evictExpired(now)
	return nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memorySessionRepo) evictExpired(now time.Time) {
	for id, e := range r.sessions {
		if now.After(e.expires) {
			delete(r.sessions, id)
		}
	}
}

// ── Redis ──

type redisSessionRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepo creates a SessionRepository stored in redis with a
// sliding TTL
func NewRedisSessionRepo(client *redis.Client, ttl time.Duration) SessionRepository {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &redisSessionRepo{client: client, ttl: ttl}
}

func (r *redisSessionRepo) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	found, err := r.client.GetJSON(ctx, sessionKeyPrefix+id, &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (r *redisSessionRepo) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now()
	return r.client.SetJSON(ctx, sessionKeyPrefix+s.ID, s, r.ttl)
}

func (r *redisSessionRepo) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, sessionKeyPrefix+id)
}
