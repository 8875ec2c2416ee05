package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/common/validation"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	contractDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/contract"
	employeeDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
	eventDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/event"
)

type RepositoryAPI interface {
	Create(ctx context.Context, e *eventDatamodel.Event) error
	Update(ctx context.Context, e *eventDatamodel.Event) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*eventDatamodel.Event, error)
	GetByContract(ctx context.Context, contractID int64) (*eventDatamodel.Event, error)
	GetAll(ctx context.Context) ([]*eventDatamodel.Event, error)
	GetUnassigned(ctx context.Context) ([]*eventDatamodel.Event, error)
	GetBySupportPerson(ctx context.Context, supportPersonID int64) ([]*eventDatamodel.Event, error)
}

type ContractLookup interface {
	GetByID(ctx context.Context, id int64) (*contractDatamodel.Contract, error)
}

type EmployeeLookup interface {
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
}

type Service struct {
	repo      RepositoryAPI
	contracts ContractLookup
	employees EmployeeLookup
	ownership *auth.OwnershipPolicy
	tx        database.UnitOfWork
	authz     auth.Authorizer
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, contracts ContractLookup, employees EmployeeLookup, ownership *auth.OwnershipPolicy, tx database.UnitOfWork, authz auth.Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		contracts: contracts,
		employees: employees,
		ownership: ownership,
		tx:        tx,
		authz:     authz,
		logger:    logger,
	}
}

// Create attaches a new event to a signed contract that has none yet.
func (s *Service) Create(ctx context.Context, p *auth.Principal, dto CreateEventDTO) (*Event, error) {
	if err := s.authz.Authorize(ctx, p, auth.CreateEvent); err != nil {
		return nil, err
	}

	dto.Normalize()
	start, end, appErr := dto.Validate()
	if appErr != nil {
		return nil, appErr
	}

	var created *eventDatamodel.Event
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.contracts.GetByID(ctx, dto.ContractID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrContractNotFound
		}
		if c.Client != nil {
			if err := s.ownership.RequireClientOwner(ctx, p, c.Client.SalespersonID, notOwnerMessage); err != nil {
				return err
			}
		}
		if !c.Signed {
			return ErrContractNotSigned
		}
		existing, err := s.repo.GetByContract(ctx, c.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrContractHasEvent
		}

		created = &eventDatamodel.Event{
			Name:            dto.Name,
			StartDatetime:   start,
			EndDatetime:     end,
			AddressLine1:    dto.AddressLine1,
			City:            dto.City,
			Country:         dto.Country,
			PostalCode:      dto.PostalCode,
			AttendeesNumber: dto.AttendeesNumber,
			ContractID:      c.ID,
			Contract:        c,
		}
		if dto.Notes != "" {
			created.Notes = &dto.Notes
		}
		return s.repo.Create(ctx, created)
	})
	if err != nil {
		s.logger.Error("failed to create event", "error", err, "contract_id", dto.ContractID)
		return nil, database.TranslateError(err, "Please check contract id.")
	}

	s.logger.Info("event created", "event_id", created.ID, "contract_id", created.ContractID, "by", p.ID())
	return FromDataModel(created), nil
}

// Update edits an event. Support staff may only touch events assigned to them and cannot reassign.
func (s *Service) Update(ctx context.Context, p *auth.Principal, id int64, dto UpdateEventDTO) (*Event, error) {
	if err := s.authz.Authorize(ctx, p, auth.UpdateEvent); err != nil {
		return nil, err
	}
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	var updated *eventDatamodel.Event
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := s.requireEvent(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ownership.RequireEventAssignee(ctx, p, e.SupportPersonID); err != nil {
			return err
		}

		if dto.StartDate != nil || dto.EndDate != nil {
			start, end, appErr := s.mergeDates(e, dto.StartDate, dto.EndDate)
			if appErr != nil {
				return appErr
			}
			e.StartDatetime, e.EndDatetime = start, end
		}
		if dto.Name != nil {
			e.Name = *dto.Name
		}
		if dto.AddressLine1 != nil {
			e.AddressLine1 = *dto.AddressLine1
		}
		if dto.City != nil {
			e.City = *dto.City
		}
		if dto.Country != nil {
			e.Country = *dto.Country
		}
		if dto.PostalCode != nil {
			e.PostalCode = *dto.PostalCode
		}
		if dto.AttendeesNumber != nil {
			e.AttendeesNumber = *dto.AttendeesNumber
		}
		if dto.Notes != nil {
			e.Notes = dto.Notes
		}
		if dto.SupportPersonID != nil {
			if s.ownership.IsSupport(p) {
				return internal.NewPermissionDeniedError("Support staff cannot reassign events.", internal.ErrCodeNotOwner)
			}
			support, err := s.requireSupport(ctx, *dto.SupportPersonID)
			if err != nil {
				return err
			}
			e.SupportPersonID = &support.ID
			e.SupportPerson = support
		}

		updated = e
		return s.repo.Update(ctx, e)
	})
	if err != nil {
		s.logger.Error("failed to update event", "error", err, "event_id", id)
		return nil, database.TranslateError(err, "Please check support person id.")
	}

	s.logger.Info("event updated", "event_id", id, "by", p.ID())
	return FromDataModel(updated), nil
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id int64) error {
	if err := s.authz.Authorize(ctx, p, auth.DeleteEvent); err != nil {
		return err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.requireEvent(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("failed to delete event", "error", err, "event_id", id)
		return database.TranslateError(err, "")
	}

	s.logger.Info("event deleted", "event_id", id, "by", p.ID())
	return nil
}

func (s *Service) List(ctx context.Context, p *auth.Principal, filter ListFilter) ([]*Event, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}

	var (
		events []*eventDatamodel.Event
		err    error
	)
	if filter.Unassigned {
		events, err = s.repo.GetUnassigned(ctx)
	} else {
		events, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		s.logger.Error("failed to list events", "error", err)
		return nil, database.TranslateError(err, "")
	}
	return fromDataModels(events), nil
}

// ListMine returns the events assigned to the calling support employee.
func (s *Service) ListMine(ctx context.Context, p *auth.Principal) ([]*Event, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	events, err := s.repo.GetBySupportPerson(ctx, p.ID())
	if err != nil {
		s.logger.Error("failed to list events", "error", err, "support_person_id", p.ID())
		return nil, database.TranslateError(err, "")
	}
	return fromDataModels(events), nil
}

func (s *Service) GetByID(ctx context.Context, p *auth.Principal, id int64) (*Event, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	e, err := s.requireEvent(ctx, id)
	if err != nil {
		return nil, database.TranslateError(err, "")
	}
	return FromDataModel(e), nil
}

func (s *Service) mergeDates(e *eventDatamodel.Event, rawStart, rawEnd *string) (time.Time, time.Time, *internal.AppError) {
	start, end := e.StartDatetime, e.EndDatetime
	if rawStart != nil {
		t, appErr := validation.ParseDate("start_date", *rawStart)
		if appErr != nil {
			return time.Time{}, time.Time{}, appErr
		}
		start = t
	}
	if rawEnd != nil {
		t, appErr := validation.ParseDate("end_date", *rawEnd)
		if appErr != nil {
			return time.Time{}, time.Time{}, appErr
		}
		end = t
	}
	if appErr := validation.ValidateDateRange(start, end); appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}
	return start, end, nil
}

func (s *Service) requireEvent(ctx context.Context, id int64) (*eventDatamodel.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func (s *Service) requireSupport(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrSupportNotFound
	}
	if e.DepartmentName() != s.ownership.SupportDepartment() {
		return nil, ErrNotSupportPersonnel
	}
	return e, nil
}

func fromDataModels(events []*eventDatamodel.Event) []*Event {
	result := make([]*Event, 0, len(events))
	for _, e := range events {
		result = append(result, FromDataModel(e))
	}
	return result
}
