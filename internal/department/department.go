package department

import (
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	departmentDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/department"
)

type Department struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

var ErrDepartmentNotFound = internal.NewNotFoundError("Department not found.", internal.ErrCodeDepartmentNotFound)

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:          d.ID,
		Name:        d.Name,
		Permissions: d.PermissionNames(),
	}
}
