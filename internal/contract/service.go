package contract

import (
	"context"
	"log/slog"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	clientDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/client"
	contractDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/contract"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, c *contractDatamodel.Contract) error
	Update(ctx context.Context, c *contractDatamodel.Contract) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*contractDatamodel.Contract, error)
	GetAll(ctx context.Context) ([]*contractDatamodel.Contract, error)
	GetUnpaid(ctx context.Context) ([]*contractDatamodel.Contract, error)
	GetUnsigned(ctx context.Context) ([]*contractDatamodel.Contract, error)
	GetWithoutEvent(ctx context.Context) ([]*contractDatamodel.Contract, error)
	GetBySalesperson(ctx context.Context, salespersonID int64, withoutEvent bool) ([]*contractDatamodel.Contract, error)
}

type ClientLookup interface {
	GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error)
	GetByEmail(ctx context.Context, email string) (*clientDatamodel.Client, error)
}

type Service struct {
	repo      RepositoryAPI
	clients   ClientLookup
	ownership *auth.OwnershipPolicy
	tx        database.UnitOfWork
	authz     auth.Authorizer
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, clients ClientLookup, ownership *auth.OwnershipPolicy, tx database.UnitOfWork, authz auth.Authorizer, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		clients:   clients,
		ownership: ownership,
		tx:        tx,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
	}
}

// Create opens a contract with the whole amount due and unsigned.
func (s *Service) Create(ctx context.Context, p *auth.Principal, dto CreateContractDTO) (*Contract, error) {
	if err := s.authz.Authorize(ctx, p, auth.CreateContract); err != nil {
		return nil, err
	}
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	var created *contractDatamodel.Contract
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cl, err := s.clients.GetByID(ctx, dto.ClientID)
		if err != nil {
			return err
		}
		if cl == nil {
			return ErrClientNotFound
		}

		created = &contractDatamodel.Contract{
			ClientID:    cl.ID,
			Client:      cl,
			TotalAmount: dto.Amount,
			DueAmount:   dto.Amount,
			Signed:      false,
		}
		return s.repo.Create(ctx, created)
	})
	if err != nil {
		s.logger.Error("failed to create contract", "error", err, "client_id", dto.ClientID)
		return nil, database.TranslateError(err, "Please check client id.")
	}

	s.logger.Info("contract created", "contract_id", created.ID, "client_id", created.ClientID, "by", p.ID())
	return FromDataModel(created), nil
}

// Update applies amount, signature and client changes. A total change moves the due amount by
// the same difference and a payment is subtracted from it.
func (s *Service) Update(ctx context.Context, p *auth.Principal, id int64, dto UpdateContractDTO) (*Contract, error) {
	if err := s.authz.Authorize(ctx, p, auth.UpdateContract); err != nil {
		return nil, err
	}

	dto.Normalize()
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	var (
		updated     *contractDatamodel.Contract
		newlySigned bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.requireContract(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ownership.RequireClientOwner(ctx, p, c.Client.SalespersonID, notOwnerMessage); err != nil {
			return err
		}

		if dto.TotalAmount != nil {
			difference := dto.TotalAmount.Sub(c.TotalAmount)
			c.TotalAmount = *dto.TotalAmount
			c.DueAmount = c.DueAmount.Add(difference)
		}
		if dto.PaidAmount != nil {
			c.DueAmount = c.DueAmount.Sub(*dto.PaidAmount)
		}
		if dto.Signed != nil {
			newlySigned = !c.Signed && *dto.Signed
			c.Signed = *dto.Signed
		}
		if dto.ClientEmail != nil {
			cl, err := s.clients.GetByEmail(ctx, *dto.ClientEmail)
			if err != nil {
				return err
			}
			if cl == nil {
				return internal.NewValidationFieldError("client_email", "Client not found.", internal.ErrCodeClientNotFound)
			}
			if cl.ID != c.ClientID {
				s.logger.Info("contract client reassigned", "contract_id", c.ID, "from", c.ClientID, "to", cl.ID)
			}
			c.ClientID = cl.ID
			c.Client = cl
		}

		updated = c
		return s.repo.Update(ctx, c)
	})
	if err != nil {
		s.logger.Error("failed to update contract", "error", err, "contract_id", id)
		return nil, database.TranslateError(err, "Please check client id.")
	}

	if updated.DueAmount.IsNegative() {
		s.logger.Warn("contract due amount is negative", "contract_id", id, "due_amount", updated.DueAmount.StringFixed(2))
	}
	if newlySigned {
		s.announceSigned(ctx, p, updated)
	}

	s.logger.Info("contract updated", "contract_id", id, "by", p.ID())
	return FromDataModel(updated), nil
}

// announceSigned runs after commit; a failing handler never undoes the signature.
func (s *Service) announceSigned(ctx context.Context, p *auth.Principal, c *contractDatamodel.Contract) {
	if s.publisher == nil {
		return
	}
	event := events.NewContractSignedEvent(c.ID, c.ClientID, p.ID(), c.TotalAmount)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish contract signed event", "error", err, "contract_id", c.ID)
	}
}

func (s *Service) Delete(ctx context.Context, p *auth.Principal, id int64) error {
	if err := s.authz.Authorize(ctx, p, auth.DeleteContract); err != nil {
		return err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.requireContract(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("failed to delete contract", "error", err, "contract_id", id)
		return database.TranslateError(err, "Contract still has an event.")
	}

	s.logger.Info("contract deleted", "contract_id", id, "by", p.ID())
	return nil
}

func (s *Service) List(ctx context.Context, p *auth.Principal, filter ListFilter) ([]*Contract, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	if appErr := filter.Validate(); appErr != nil {
		return nil, appErr
	}

	var (
		contracts []*contractDatamodel.Contract
		err       error
	)
	switch {
	case filter.Unpaid:
		contracts, err = s.repo.GetUnpaid(ctx)
	case filter.Unsigned:
		contracts, err = s.repo.GetUnsigned(ctx)
	case filter.NoEvent:
		contracts, err = s.repo.GetWithoutEvent(ctx)
	default:
		contracts, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		s.logger.Error("failed to list contracts", "error", err)
		return nil, database.TranslateError(err, "")
	}
	return fromDataModels(contracts), nil
}

// ListMine returns the contracts of the caller's clients, optionally only those without an event.
func (s *Service) ListMine(ctx context.Context, p *auth.Principal, withoutEvent bool) ([]*Contract, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	contracts, err := s.repo.GetBySalesperson(ctx, p.ID(), withoutEvent)
	if err != nil {
		s.logger.Error("failed to list contracts", "error", err, "salesperson_id", p.ID())
		return nil, database.TranslateError(err, "")
	}
	return fromDataModels(contracts), nil
}

func (s *Service) GetByID(ctx context.Context, p *auth.Principal, id int64) (*Contract, error) {
	if p == nil {
		return nil, internal.ErrNotAuthenticated
	}
	c, err := s.requireContract(ctx, id)
	if err != nil {
		return nil, database.TranslateError(err, "")
	}
	return FromDataModel(c), nil
}

func (s *Service) requireContract(ctx context.Context, id int64) (*contractDatamodel.Contract, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContractNotFound
	}
	return c, nil
}

func fromDataModels(contracts []*contractDatamodel.Contract) []*Contract {
	result := make([]*Contract, 0, len(contracts))
	for _, c := range contracts {
		result = append(result, FromDataModel(c))
	}
	return result
}
