package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vineetm1204-m/ODAutomation/internal/model"
)

// ErrReferenceDuplicate an entry with the same code already exists
var ErrReferenceDuplicate = errors.New("reference code already exists")

// ReferenceRepository faculty and subject suggestion lists
type ReferenceRepository interface {
	ListFaculty(ctx context.Context) ([]model.Faculty, error)
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	CreateFaculty(ctx context.Context, f *model.Faculty) error
	CreateSubject(ctx context.Context, s *model.Subject) error
}

// referenceRepo ReferenceRepository backed by postgres
type referenceRepo struct {
	db *gorm.DB
}

// NewReferenceRepo creates the GORM ReferenceRepository
func NewReferenceRepo(db *gorm.DB) ReferenceRepository {
	return &referenceRepo{db: db}
}

func (r *referenceRepo) ListFaculty(ctx context.Context) ([]model.Faculty, error) {
	list := []model.Faculty{}
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *referenceRepo) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	list := []model.Subject{}
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&list).Error
	return list, err
}

func (r *referenceRepo) CreateFaculty(ctx context.Context, f *model.Faculty) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Faculty{}).
		Where("code = ?", f.Code).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrReferenceDuplicate
	}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *referenceRepo) CreateSubject(ctx context.Context, s *model.Subject) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Subject{}).
		Where("code = ?", s.Code).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrReferenceDuplicate
	}
	return r.db.WithContext(ctx).Create(s).Error
}
