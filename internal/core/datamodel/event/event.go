package event

import (
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/contract"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
)

type Event struct {
	ID              int64              `gorm:"primaryKey"`
	Name            string             `gorm:"column:name;size:100;not null"`
	StartDatetime   time.Time          `gorm:"column:start_datetime"`
	EndDatetime     time.Time          `gorm:"column:end_datetime"`
	AddressLine1    string             `gorm:"column:address_line1;size:255"`
	City            string             `gorm:"column:city;size:50"`
	Country         string             `gorm:"column:country;size:25"`
	PostalCode      string             `gorm:"column:postal_code;size:20"`
	AttendeesNumber int                `gorm:"column:attendees_number"`
	Notes           *string            `gorm:"column:notes;type:text"`
	ContractID      int64              `gorm:"column:contract_id;uniqueIndex;not null"`
	Contract        *contract.Contract `gorm:"foreignKey:ContractID"`
	SupportPersonID *int64             `gorm:"column:support_person_id"`
	SupportPerson   *employee.Employee `gorm:"foreignKey:SupportPersonID"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (Event) TableName() string {
	return "events"
}
