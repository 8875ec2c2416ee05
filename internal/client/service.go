package client

import (
	"context"
	"log/slog"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	clientDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/client"
	employeeDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	Create(ctx context.Context, c *clientDatamodel.Client) error
	Update(ctx context.Context, c *clientDatamodel.Client) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error)
	GetByEmail(ctx context.Context, email string) (*clientDatamodel.Client, error)
	GetByPhone(ctx context.Context, phone string) (*clientDatamodel.Client, error)
	GetAll(ctx context.Context) ([]*clientDatamodel.Client, error)
	GetBySalesperson(ctx context.Context, salespersonID int64) ([]*clientDatamodel.Client, error)
}

type EmployeeLookup interface {
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeLookup
	ownership *auth.OwnershipPolicy
	tx        database.UnitOfWork
	authz     auth.Authorizer
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeLookup, ownership *auth.OwnershipPolicy, tx database.UnitOfWork, authz auth.Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		ownership: ownership,
		tx:        tx,
		authz:     authz,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, p *auth.Principal, dto CreateClientDTO) (*Client, error) {
	if err := s.authz.Authorize(ctx, p, auth.CreateClient); err != nil {
		return nil, err
	}

	dto.Normalize()
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	if dto.SalespersonID == 0 {
		if !s.ownership.IsSales(p) {
			return nil, ErrSalespersonRequired
		}
		dto.SalespersonID = p.ID()
	}

	var created *clientDatamodel.Client
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, dto.Email, 0); err != nil {
			return err
		}
		if dto.Phone != "" {
			if err := s.ensurePhoneFree(ctx, dto.Phone, 0); err != nil {
				return err
			}
		}
		salesperson, err := s.requireSalesperson(ctx, dto.SalespersonID)
		if err != nil {
			return err
		}

		created = &clientDatamodel.Client{
			FirstName:     dto.FirstName,
			LastName:      dto.LastName,
			Email:         dto.Email,
			Phone:         optional(dto.Phone),
			CompanyName:   optional(dto.CompanyName),
			SalespersonID: salesperson.ID,
			Salesperson:   salesperson,
		}
		return s.repo.Create(ctx, created)
	})
	if err != nil {
		s.logger.Error("failed to create client", "error", err, "email", dto.Email)
		return nil, database.TranslateError(err, "Please check salesperson id")
	}

	s.logger.Info("client created", "client_id", created.ID, "salesperson_id", created.SalespersonID, "by", p.ID())
	return FromDataModel(created), nil
}

// Update identifies the client through ref. A salesperson may only update their own clients.
func (s *Service) Update(ctx context.Context, p *auth.Principal, ref ClientRef, dto UpdateClientDTO) (*Client, error) {
	if err := s.authz.Authorize(ctx, p, auth.UpdateClient); err != nil {
		return nil, err
	}
	if appErr := ref.Validate(); appErr != nil {
		return nil, appErr
	}

	dto.Normalize()
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	var updated *clientDatamodel.Client
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.resolve(ctx, ref)
		if err != nil {
			return err
		}
		if err := s.ownership.RequireClientOwner(ctx, p, c.SalespersonID, notOwnerMessage); err != nil {
			return err
		}

		if dto.FirstName != nil {
			c.FirstName = *dto.FirstName
		}
		if dto.LastName != nil {
			c.LastName = *dto.LastName
		}
		if dto.Email != nil && *dto.Email != c.Email {
			if err := s.ensureEmailFree(ctx, *dto.Email, c.ID); err != nil {
				return err
			}
			c.Email = *dto.Email
		}
		if dto.Phone != nil && (c.Phone == nil || *dto.Phone != *c.Phone) {
			if err := s.ensurePhoneFree(ctx, *dto.Phone, c.ID); err != nil {
				return err
			}
			c.Phone = dto.Phone
		}
		if dto.CompanyName != nil {
			c.CompanyName = optional(*dto.CompanyName)
		}
		if dto.SalespersonID != nil && *dto.SalespersonID != c.SalespersonID {
			salesperson, err := s.requireSalesperson(ctx, *dto.SalespersonID)
			if err != nil {
				return err
			}
			c.SalespersonID = salesperson.ID
			c.Salesperson = salesperson
		}

		updated = c
		return s.repo.Update(ctx, c)
	})
	if err != nil {
		s.logger.Error("failed to update client", "error", err, "client_id", ref.ID, "email", ref.Email)
		return nil, database.TranslateError(err, "Please check salesperson id")
	}

	s.logger.Info("client updated", "client_id", updated.ID, "by", p.ID())
	return FromDataModel(updated), nil
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id int64) error {
	if err := s.authz.Authorize(ctx, p, auth.DeleteClient); err != nil {
		return err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.resolve(ctx, ClientRef{ID: id})
		if err != nil {
			return err
		}
		if err := s.ownership.RequireClientOwner(ctx, p, c.SalespersonID, notOwnerMessage); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("failed to delete client", "error", err, "client_id", id)
		return database.TranslateError(err, "Client still has contracts")
	}

	s.logger.Info("client deleted", "client_id", id, "by", p.ID())
	return nil
}

func (s *Service) List(ctx context.Context, p *auth.Principal) ([]*Client, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	clients, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list clients", "error", err)
		return nil, database.TranslateError(err, "")
	}
	return fromDataModels(clients), nil
}

// ListMine returns the clients assigned to the calling salesperson.
func (s *Service) ListMine(ctx context.Context, p *auth.Principal) ([]*Client, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	clients, err := s.repo.GetBySalesperson(ctx, p.ID())
	if err != nil {
		s.logger.Error("failed to list clients", "error", err, "salesperson_id", p.ID())
		return nil, database.TranslateError(err, "")
	}
	return fromDataModels(clients), nil
}

func (s *Service) Get(ctx context.Context, p *auth.Principal, ref ClientRef) (*Client, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	if appErr := ref.Validate(); appErr != nil {
		return nil, appErr
	}
	c, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, database.TranslateError(err, "")
	}
	return FromDataModel(c), nil
}

func (s *Service) resolve(ctx context.Context, ref ClientRef) (*clientDatamodel.Client, error) {
	var (
		c   *clientDatamodel.Client
		err error
	)
	if ref.ID != 0 {
		c, err = s.repo.GetByID(ctx, ref.ID)
	} else {
		c, err = s.repo.GetByEmail(ctx, ref.Email)
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClientNotFound
	}
	return c, nil
}

func (s *Service) requireSalesperson(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrSalespersonNotFound
	}
	if e.DepartmentName() != s.ownership.SalesDepartment() {
		return nil, ErrNotASalesperson
	}
	return e, nil
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

func (s *Service) ensurePhoneFree(ctx context.Context, phone string, selfID int64) error {
	existing, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrPhoneTaken
	}
	return nil
}

func fromDataModels(clients []*clientDatamodel.Client) []*Client {
	result := make([]*Client, 0, len(clients))
	for _, c := range clients {
		result = append(result, FromDataModel(c))
	}
	return result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
