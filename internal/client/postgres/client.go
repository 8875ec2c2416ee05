package postgres

import (
	"context"
	"errors"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	clientDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/client"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *clientDatamodel.Client) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Create(c).Error
}

func (r *ClientRepository) Update(ctx context.Context, c *clientDatamodel.Client) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Save(c).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return database.Conn(ctx, r.db).Delete(&clientDatamodel.Client{}, id).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error) {
	return r.first(ctx, "clients.id = ?", id)
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*clientDatamodel.Client, error) {
	return r.first(ctx, "clients.email = ?", email)
}

func (r *ClientRepository) GetByPhone(ctx context.Context, phone string) (*clientDatamodel.Client, error) {
	return r.first(ctx, "clients.phone = ?", phone)
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]*clientDatamodel.Client, error) {
	var clients []*clientDatamodel.Client
	err := database.Conn(ctx, r.db).Preload("Salesperson").Order("clients.id ASC").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) GetBySalesperson(ctx context.Context, salespersonID int64) ([]*clientDatamodel.Client, error) {
	var clients []*clientDatamodel.Client
	err := database.Conn(ctx, r.db).
		Preload("Salesperson").
		Where("clients.salesperson_id = ?", salespersonID).
		Order("clients.id ASC").
		Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) first(ctx context.Context, query string, arg interface{}) (*clientDatamodel.Client, error) {
	var c clientDatamodel.Client
	err := database.Conn(ctx, r.db).Preload("Salesperson.Department").Where(query, arg).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
