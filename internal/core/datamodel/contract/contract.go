package contract

import (
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/client"
	"github.com/shopspring/decimal"
)

type Contract struct {
	ID          int64           `gorm:"primaryKey"`
	ClientID    int64           `gorm:"column:client_id;not null"`
	Client      *client.Client  `gorm:"foreignKey:ClientID"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(15,2);not null"`
	DueAmount   decimal.Decimal `gorm:"column:due_amount;type:decimal(15,2);not null"`
	Signed      bool            `gorm:"column:signed;not null;default:false"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Contract) TableName() string {
	return "contracts"
}
