package employee

import (
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	employeeDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
)

type Employee struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"fname"`
	LastName       string    `json:"lname"`
	Email          string    `json:"email"`
	DepartmentID   int64     `json:"department_id"`
	DepartmentName string    `json:"department"`
	CreatedAt      time.Time `json:"created_at"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

var (
	ErrEmployeeNotFound = internal.NewNotFoundError("Employee not found.", internal.ErrCodeEmployeeNotFound)
	ErrEmailTaken       = internal.NewConflictError("Email already in use.", internal.ErrCodeEmailTaken)
	ErrCannotDeleteSelf = internal.NewValidationError("You cannot delete your own account.", internal.ErrCodeValidationFailed)
)

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:             e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName(),
		CreatedAt:      e.CreatedAt,
	}
}
