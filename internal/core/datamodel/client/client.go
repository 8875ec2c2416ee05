package client

import (
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
)

type Client struct {
	ID            int64              `gorm:"primaryKey"`
	FirstName     string             `gorm:"column:fname;size:50;not null"`
	LastName      string             `gorm:"column:lname;size:50;not null"`
	Email         string             `gorm:"column:email;size:255;uniqueIndex;not null"`
	Phone         *string            `gorm:"column:phone;size:20;uniqueIndex"`
	CompanyName   *string            `gorm:"column:company_name;size:255"`
	SalespersonID int64              `gorm:"column:salesperson_id;not null"`
	Salesperson   *employee.Employee `gorm:"foreignKey:SalespersonID"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	LastUpdated   time.Time          `gorm:"column:last_updated;autoUpdateTime"`
}

func (Client) TableName() string {
	return "clients"
}
