package client

import (
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	clientDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/client"
)

type Client struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"fname"`
	LastName        string    `json:"lname"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	CompanyName     string    `json:"company_name,omitempty"`
	SalespersonID   int64     `json:"salesperson_id"`
	SalespersonName string    `json:"salesperson,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	LastUpdated     time.Time `json:"last_updated"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

var (
	ErrClientNotFound      = internal.NewNotFoundError("Client not found.", internal.ErrCodeClientNotFound)
	ErrEmailTaken          = internal.NewConflictError("Email already in use.", internal.ErrCodeEmailTaken)
	ErrPhoneTaken          = internal.NewConflictError("Phone number already in use.", internal.ErrCodePhoneTaken)
	ErrSalespersonNotFound = internal.NewValidationFieldError("salesperson_id", "Employee not found.", internal.ErrCodeEmployeeNotFound)
	ErrNotASalesperson     = internal.NewValidationFieldError("salesperson_id", "Employee must be a salesperson.", internal.ErrCodeWrongDepartment)
	ErrSalespersonRequired = internal.NewValidationFieldError("salesperson_id", "salesperson_id is required", internal.ErrCodeMissingIdentifier)
)

const notOwnerMessage = "You can only manage your own clients."

func FromDataModel(c *clientDatamodel.Client) *Client {
	result := &Client{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		SalespersonID: c.SalespersonID,
		CreatedAt:     c.CreatedAt,
		LastUpdated:   c.LastUpdated,
	}
	if c.Phone != nil {
		result.Phone = *c.Phone
	}
	if c.CompanyName != nil {
		result.CompanyName = *c.CompanyName
	}
	if c.Salesperson != nil {
		result.SalespersonName = c.Salesperson.FirstName + " " + c.Salesperson.LastName
	}
	return result
}
