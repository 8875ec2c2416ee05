package employee

import (
	"strings"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	DepartmentID int64
}

func (dto *CreateEmployeeDTO) Normalize() {
	dto.FirstName = validation.TitleName(dto.FirstName)
	dto.LastName = validation.UpperName(dto.LastName)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
}

func (dto CreateEmployeeDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("fname", dto.FirstName).Required().MaxLength(50)
	v.Field("lname", dto.LastName).Required().MaxLength(50)
	v.Field("email", dto.Email).Required().Email().MaxLength(255)
	v.Field("password", dto.Password).Required()
	v.Field("department_id", dto.DepartmentID).Required()
	return v.Validate()
}

// UpdateEmployeeDTO only touches the fields that are set.
type UpdateEmployeeDTO struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Password     *string
	DepartmentID *int64
}

func (dto *UpdateEmployeeDTO) Normalize() {
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
}

func (dto UpdateEmployeeDTO) Validate() *internal.AppError {
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
	if dto.Password != nil {
		v.Field("password", *dto.Password).Required()
	}
	if dto.DepartmentID != nil {
		v.Field("department_id", *dto.DepartmentID).Required()
	}
	return v.Validate()
}

func (dto UpdateEmployeeDTO) IsEmpty() bool {
	return dto.FirstName == nil && dto.LastName == nil && dto.Email == nil && dto.Password == nil && dto.DepartmentID == nil
}
