package employee

import (
	"context"
	"log/slog"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	departmentDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/department"
	employeeDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/department"
)

type RepositoryAPI interface {
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, e *employeeDatamodel.Employee) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error)
	GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	GetAllInDepartment(ctx context.Context, departmentName string) ([]*employeeDatamodel.Employee, error)
}

type DepartmentLookup interface {
	GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error)
}

type Service struct {
	repo        RepositoryAPI
	departments DepartmentLookup
	hasher      auth.PasswordHasher
	tx          database.UnitOfWork
	authz       auth.Authorizer
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentLookup, hasher auth.PasswordHasher, tx database.UnitOfWork, authz auth.Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		hasher:      hasher,
		tx:          tx,
		authz:       authz,
		logger:      logger,
	}
}

func (s *Service) Create(ctx context.Context, p *auth.Principal, dto CreateEmployeeDTO) (*Employee, error) {
	if err := s.authz.Authorize(ctx, p, auth.CreateEmployee); err != nil {
		return nil, err
	}

	dto.Normalize()
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	var created *employeeDatamodel.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, dto.Email, 0); err != nil {
			return err
		}
		dept, err := s.requireDepartment(ctx, dto.DepartmentID)
		if err != nil {
			return err
		}

		hash, err := s.hasher.Hash(dto.Password)
		if err != nil {
			return internal.NewInternalError("failed to hash password", err)
		}

		created = &employeeDatamodel.Employee{
			FirstName:    dto.FirstName,
			LastName:     dto.LastName,
			Email:        dto.Email,
			PasswordHash: hash,
			DepartmentID: dept.ID,
			Department:   dept,
		}
		return s.repo.Create(ctx, created)
	})
	if err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, database.TranslateError(err, "Please check department id")
	}

	s.logger.Info("employee created", "employee_id", created.ID, "department_id", created.DepartmentID, "by", p.ID())
	return FromDataModel(created), nil
}

// Update re-hashes the password only when one is explicitly supplied.
func (s *Service) Update(ctx context.Context, p *auth.Principal, id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := s.authz.Authorize(ctx, p, auth.UpdateEmployee); err != nil {
		return nil, err
	}

	dto.Normalize()
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	var updated *employeeDatamodel.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := s.requireEmployee(ctx, id)
		if err != nil {
			return err
		}

		if dto.FirstName != nil {
			e.FirstName = *dto.FirstName
		}
		if dto.LastName != nil {
			e.LastName = *dto.LastName
		}
		if dto.Email != nil && *dto.Email != e.Email {
			if err := s.ensureEmailFree(ctx, *dto.Email, e.ID); err != nil {
				return err
			}
			e.Email = *dto.Email
		}
		if dto.DepartmentID != nil && *dto.DepartmentID != e.DepartmentID {
			dept, err := s.requireDepartment(ctx, *dto.DepartmentID)
			if err != nil {
				return err
			}
			e.DepartmentID = dept.ID
			e.Department = dept
		}
		if dto.Password != nil {
			hash, err := s.hasher.Hash(*dto.Password)
			if err != nil {
				return internal.NewInternalError("failed to hash password", err)
			}
			e.PasswordHash = hash
		}

		updated = e
		return s.repo.Update(ctx, e)
	})
	if err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, database.TranslateError(err, "Please check department id")
	}

	s.logger.Info("employee updated", "employee_id", id, "by", p.ID())
	return FromDataModel(updated), nil
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id int64) error {
	if err := s.authz.Authorize(ctx, p, auth.DeleteEmployee); err != nil {
		return err
	}
	if id == p.ID() {
		return ErrCannotDeleteSelf
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.requireEmployee(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return database.TranslateError(err, "Employee still has clients or events assigned")
	}

	s.logger.Info("employee deleted", "employee_id", id, "by", p.ID())
	return nil
}

// List returns every employee, or only those of departmentName when it is set.
func (s *Service) List(ctx context.Context, p *auth.Principal, departmentName string) ([]*Employee, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}

	var (
		employees []*employeeDatamodel.Employee
		err       error
	)
	if departmentName == "" {
		employees, err = s.repo.GetAll(ctx)
	} else {
		employees, err = s.repo.GetAllInDepartment(ctx, departmentName)
	}
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, database.TranslateError(err, "")
	}

	result := make([]*Employee, 0, len(employees))
	for _, e := range employees {
		result = append(result, FromDataModel(e))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, p *auth.Principal, id int64) (*Employee, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	e, err := s.requireEmployee(ctx, id)
	if err != nil {
		return nil, database.TranslateError(err, "")
	}
	return FromDataModel(e), nil
}

func (s *Service) GetByEmail(ctx context.Context, p *auth.Principal, email string) (*Employee, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	e, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, database.TranslateError(err, "")
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	return FromDataModel(e), nil
}

func (s *Service) requireEmployee(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	return e, nil
}

func (s *Service) requireDepartment(ctx context.Context, id int64) (*departmentDatamodel.Department, error) {
	d, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrEmailTaken
	}
	return nil
}
