package employee

import (
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/department"
)

type Employee struct {
	ID           int64                  `gorm:"primaryKey"`
	FirstName    string                 `gorm:"column:fname;size:50"`
	LastName     string                 `gorm:"column:lname;size:50"`
	Email        string                 `gorm:"column:email;size:255;uniqueIndex;not null"`
	PasswordHash string                 `gorm:"column:password;size:255;not null"`
	DepartmentID int64                  `gorm:"column:department_id;not null"`
	Department   *department.Department `gorm:"foreignKey:DepartmentID"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}
