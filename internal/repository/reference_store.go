package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/model"
)

// ── In-memory ──

type memoryReferenceRepo struct {
	mu       sync.RWMutex
	faculty  []model.Faculty
	subjects []model.Subject
}

// NewMemoryReferenceRepo creates a ReferenceRepository held in memory
func NewMemoryReferenceRepo(faculty []model.Faculty, subjects []model.Subject) ReferenceRepository {
	return &memoryReferenceRepo{
		faculty:  append([]model.Faculty{}, faculty...),
		subjects: append([]model.Subject{}, subjects...),
	}
}

func (r *memoryReferenceRepo) ListFaculty(_ context.Context) ([]model.Faculty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Faculty{}, r.faculty...), nil
}

func (r *memoryReferenceRepo) ListSubjects(_ context.Context) ([]model.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Subject{}, r.subjects...), nil
}

func (r *memoryReferenceRepo) CreateFaculty(_ context.Context, f *model.Faculty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.faculty {
		if existing.Code == f.Code {
			return ErrReferenceDuplicate
		}
	}
	r.faculty = append(r.faculty, *f)
	return nil
}

func (r *memoryReferenceRepo) CreateSubject(_ context.Context, s *model.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.subjects {
		if existing.Code == s.Code {
			return ErrReferenceDuplicate
		}
	}
	r.subjects = append(r.subjects, *s)
	return nil
}

// ── JSON files ──

const (
	facultyFile  = "faculty.json"
	subjectsFile = "subjects.json"
)

// fileReferenceRepo reads faculty.json / subjects.json from the static dir on
// every list, so hand edits show up without a restart. A missing or broken
// file reads as an empty list.
type fileReferenceRepo struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger
}

// NewFileReferenceRepo creates a ReferenceRepository over JSON files in dir
func NewFileReferenceRepo(dir string, logger *zap.Logger) ReferenceRepository {
	return &fileReferenceRepo{dir: dir, logger: logger}
}

func (r *fileReferenceRepo) ListFaculty(_ context.Context) ([]model.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []model.Faculty{}
	r.read(facultyFile, &list)
	return list, nil
}

func (r *fileReferenceRepo) ListSubjects(_ context.Context) ([]model.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []model.Subject{}
	r.read(subjectsFile, &list)
	return list, nil
}

func (r *fileReferenceRepo) CreateFaculty(_ context.Context, f *model.Faculty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []model.Faculty{}
	r.read(facultyFile, &list)
	for _, existing := range list {
		if existing.Code == f.Code {
			return ErrReferenceDuplicate
		}
	}
	return r.write(facultyFile, append(list, *f))
}

func (r *fileReferenceRepo) CreateSubject(_ context.Context, s *model.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []model.Subject{}
	r.read(subjectsFile, &list)
	for _, existing := range list {
		if existing.Code == s.Code {
			return ErrReferenceDuplicate
		}
	}
	return r.write(subjectsFile, append(list, *s))
}

func (r *fileReferenceRepo) read(name string, dst interface{}) {
	path := filepath.Join(r.dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("reference file unreadable", zap.String("path", path), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(b, dst); err != nil {
		r.logger.Warn("reference file is not valid JSON", zap.String("path", path), zap.Error(err))
	}
}

// write replaces the file via a temp file + rename
func (r *fileReferenceRepo) write(name string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", r.dir, err)
	}
	tmp, err := os.CreateTemp(r.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(r.dir, name))
}
