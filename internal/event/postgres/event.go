package postgres

import (
	"context"
	"errors"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	eventDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/event"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *eventDatamodel.Event) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Create(e).Error
}

func (r *EventRepository) Update(ctx context.Context, e *eventDatamodel.Event) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Save(e).Error
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return database.Conn(ctx, r.db).Delete(&eventDatamodel.Event{}, id).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*eventDatamodel.Event, error) {
	return r.first(ctx, "events.id = ?", id)
}

func (r *EventRepository) GetByContract(ctx context.Context, contractID int64) (*eventDatamodel.Event, error) {
	return r.first(ctx, "events.contract_id = ?", contractID)
}

func (r *EventRepository) GetAll(ctx context.Context) ([]*eventDatamodel.Event, error) {
	return r.find(r.query(ctx))
}

func (r *EventRepository) GetUnassigned(ctx context.Context) ([]*eventDatamodel.Event, error) {
	return r.find(r.query(ctx).Where("events.support_person_id IS NULL"))
}

func (r *EventRepository) GetBySupportPerson(ctx context.Context, supportPersonID int64) ([]*eventDatamodel.Event, error) {
	return r.find(r.query(ctx).Where("events.support_person_id = ?", supportPersonID))
}

func (r *EventRepository) query(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db).Preload("Contract.Client").Preload("SupportPerson")
}

func (r *EventRepository) find(q *gorm.DB) ([]*eventDatamodel.Event, error) {
	var events []*eventDatamodel.Event
	err := q.Order("events.start_datetime ASC").Find(&events).Error
	return events, err
}

func (r *EventRepository) first(ctx context.Context, query string, arg interface{}) (*eventDatamodel.Event, error) {
	var e eventDatamodel.Event
	err := r.query(ctx).Where(query, arg).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
