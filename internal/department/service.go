package department

import (
	"context"
	"log/slog"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	departmentDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error)
	GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error)
	GetByName(ctx context.Context, name string) (*departmentDatamodel.Department, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns every department with its permission names.
func (s *Service) List(ctx context.Context, p *auth.Principal) ([]*Department, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}

	departments, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, internal.NewStorageError("failed to list departments", internal.ErrCodeStorage, err)
	}

	result := make([]*Department, 0, len(departments))
	for _, d := range departments {
		result = append(result, FromDataModel(d))
	}
	return result, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*Department, error) {
	d, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, internal.NewStorageError("failed to get department", internal.ErrCodeStorage, err)
	}
	if d == nil {
		return nil, ErrDepartmentNotFound
	}
	return FromDataModel(d), nil
}
