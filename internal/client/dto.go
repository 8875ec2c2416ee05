package client

import (
	"strings"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/common/validation"
)

type CreateClientDTO struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CompanyName string
	// SalespersonID may stay zero when the caller is a salesperson.
	SalespersonID int64
}

func (dto *CreateClientDTO) Normalize() {
	dto.FirstName = validation.TitleName(dto.FirstName)
	dto.LastName = validation.UpperName(dto.LastName)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Phone = validation.NormalizePhone(dto.Phone)
	dto.CompanyName = strings.TrimSpace(dto.CompanyName)
}

func (dto CreateClientDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("fname", dto.FirstName).Required().MaxLength(50)
	v.Field("lname", dto.LastName).Required().MaxLength(50)
	v.Field("email", dto.Email).Required().Email().MaxLength(255)
	v.Field("phone", dto.Phone).Phone()
	v.Field("company_name", dto.CompanyName).MaxLength(255)
	return v.Validate()
}

// ClientRef identifies a client by id, or by email when no id is given.
type ClientRef struct {
	ID    int64
	Email string
}

func (r ClientRef) Validate() *internal.AppError {
	if r.ID == 0 && strings.TrimSpace(r.Email) == "" {
		return internal.NewValidationFieldError("id", "Provide either client id or email.", internal.ErrCodeMissingIdentifier)
	}
	return nil
}

type UpdateClientDTO struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	CompanyName   *string
	SalespersonID *int64
}

func (dto *UpdateClientDTO) Normalize() {
	if dto.FirstName != nil {
		v := validation.TitleName(*dto.FirstName)
		dto.FirstName = &v
	}
	if dto.LastName != nil {
		v := validation.UpperName(*dto.LastName)
		dto.LastName = &v
	}
	if dto.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*dto.Email))
		dto.Email = &v
	}
	if dto.Phone != nil {
		v := validation.NormalizePhone(*dto.Phone)
		dto.Phone = &v
	}
}

func (dto UpdateClientDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.FirstName != nil {
		v.Field("fname", *dto.FirstName).Required().MaxLength(50)
	}
	if dto.LastName != nil {
		v.Field("lname", *dto.LastName).Required().MaxLength(50)
	}
	if dto.Email != nil {
		v.Field("email", *dto.Email).Required().Email().MaxLength(255)
	}
	if dto.Phone != nil {
		v.Field("phone", *dto.Phone).Required().Phone()
	}
	if dto.CompanyName != nil {
		v.Field("company_name", *dto.CompanyName).MaxLength(255)
	}
	if dto.SalespersonID != nil {
		v.Field("salesperson_id", *dto.SalespersonID).Required()
	}
	return v.Validate()
}
