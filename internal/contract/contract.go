package contract

import (
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	contractDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/contract"
	"github.com/shopspring/decimal"
)

type Contract struct {
	ID            int64           `json:"id"`
	ClientID      int64           `json:"client_id"`
	ClientName    string          `json:"client,omitempty"`
	SalespersonID int64           `json:"salesperson_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DueAmount     decimal.Decimal `json:"due_amount"`
	Signed        bool            `json:"signed"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Overpaid reports a negative due amount, which is allowed but worth telling the user about.
func (c *Contract) Overpaid() bool {
	return c.DueAmount.IsNegative()
}

var (
	ErrContractNotFound = internal.NewNotFoundError("Contract not found.", internal.ErrCodeContractNotFound)
	ErrClientNotFound   = internal.NewValidationFieldError("client_id", "Client not found.", internal.ErrCodeClientNotFound)
	ErrExclusiveFilters = internal.NewValidationError("unpaid, unsigned and noevent are mutually exclusive.", internal.ErrCodeExclusiveFilters)
)

const notOwnerMessage = "You can only update contracts of your clients."

func FromDataModel(c *contractDatamodel.Contract) *Contract {
	result := &Contract{
		ID:          c.ID,
		ClientID:    c.ClientID,
		TotalAmount: c.TotalAmount,
		DueAmount:   c.DueAmount,
		Signed:      c.Signed,
		CreatedAt:   c.CreatedAt,
	}
	if c.Client != nil {
		result.ClientName = c.Client.FirstName + " " + c.Client.LastName
		result.SalespersonID = c.Client.SalespersonID
	}
	return result
}
