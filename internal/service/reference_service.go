package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/model"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
)

var ErrReferenceCodeExists = errors.New("An entry with this code already exists")

// ReferenceService faculty and subject suggestion lists
type ReferenceService interface {
	ListFaculty(ctx context.Context) ([]model.Faculty, error)
	ListSubjects(ctx context.Context) ([]model.Subject, error)
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*model.Faculty, error)
	CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*model.Subject, error)
}

type referenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReferenceService creates a ReferenceService
func NewReferenceService(repo *repository.Repository, logger *zap.Logger) ReferenceService {
	return &referenceService{repo: repo, logger: logger}
}

// ListFaculty never fails the page: a broken store reads as an empty list
func (s *referenceService) ListFaculty(ctx context.Context) ([]model.Faculty, error) {
	list, err := s.repo.Reference.ListFaculty(ctx)
	if err != nil {
		s.logger.Warn("faculty list unavailable", zap.Error(err))
		return []model.Faculty{}, nil
	}
	if list == nil {
		list = []model.Faculty{}
	}
	return list, nil
}

func (s *referenceService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	list, err := s.repo.Reference.ListSubjects(ctx)
	if err != nil {
		s.logger.Warn("subject list unavailable", zap.Error(err))
		return []model.Subject{}, nil
	}
	if list == nil {
		list = []model.Subject{}
	}
	return list, nil
}

func (s *referenceService) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*model.Faculty, error) {
	f := &model.Faculty{
		Name: strings.TrimSpace(req.Name),
		Code: strings.TrimSpace(req.Code),
	}
	if err := s.repo.Reference.CreateFaculty(ctx, f); err != nil {
		if errors.Is(err, repository.ErrReferenceDuplicate) {
			return nil, ErrReferenceCodeExists
		}
		s.logger.Error("failed to create faculty", zap.Error(err))
		return nil, err
	}
	return f, nil
}

func (s *referenceService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*model.Subject, error) {
	subj := &model.Subject{
		Code: strings.TrimSpace(req.Code),
		Name: strings.TrimSpace(req.Name),
	}
	if err := s.repo.Reference.CreateSubject(ctx, subj); err != nil {
		if errors.Is(err, repository.ErrReferenceDuplicate) {
			return nil, ErrReferenceCodeExists
		}
		s.logger.Error("failed to create subject", zap.Error(err))
		return nil, err
	}
	return subj, nil
}
