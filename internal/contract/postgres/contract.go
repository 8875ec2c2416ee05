package postgres

import (
	"context"
	"errors"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	contractDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/contract"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, c *contractDatamodel.Contract) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Create(c).Error
}

func (r *ContractRepository) Update(ctx context.Context, c *contractDatamodel.Contract) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Save(c).Error
}

func (r *ContractRepository) Delete(ctx context.Context, id int64) error {
	return database.Conn(ctx, r.db).Delete(&contractDatamodel.Contract{}, id).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*contractDatamodel.Contract, error) {
	var c contractDatamodel.Contract
	err := database.Conn(ctx, r.db).Preload("Client").Where("contracts.id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) GetAll(ctx context.Context) ([]*contractDatamodel.Contract, error) {
	return r.find(r.query(ctx))
}

func (r *ContractRepository) GetUnpaid(ctx context.Context) ([]*contractDatamodel.Contract, error) {
	return r.find(r.query(ctx).Where("contracts.due_amount > ?", 0))
}

func (r *ContractRepository) GetUnsigned(ctx context.Context) ([]*contractDatamodel.Contract, error) {
	return r.find(r.query(ctx).Where("contracts.signed = ?", false))
}

func (r *ContractRepository) GetWithoutEvent(ctx context.Context) ([]*contractDatamodel.Contract, error) {
	return r.find(withoutEvent(r.query(ctx)))
}

func (r *ContractRepository) GetBySalesperson(ctx context.Context, salespersonID int64, noEvent bool) ([]*contractDatamodel.Contract, error) {
	q := r.query(ctx).
		Joins("JOIN clients ON clients.id = contracts.client_id").
		Where("clients.salesperson_id = ?", salespersonID)
	if noEvent {
		q = withoutEvent(q)
	}
	return r.find(q)
}

func (r *ContractRepository) query(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db).Model(&contractDatamodel.Contract{}).Preload("Client")
}

func (r *ContractRepository) find(q *gorm.DB) ([]*contractDatamodel.Contract, error) {
	var contracts []*contractDatamodel.Contract
	err := q.Order("contracts.id ASC").Find(&contracts).Error
	return contracts, err
}

func withoutEvent(q *gorm.DB) *gorm.DB {
	return q.Joins("LEFT JOIN events ON events.contract_id = contracts.id").Where("events.id IS NULL")
}
