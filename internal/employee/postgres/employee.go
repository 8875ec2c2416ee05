package postgres

import (
	"context"
	"errors"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	employeeDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Create(e).Error
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employeeDatamodel.Employee) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Save(e).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	return database.Conn(ctx, r.db).Delete(&employeeDatamodel.Employee{}, id).Error
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := database.Conn(ctx, r.db).Preload("Department").Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := database.Conn(ctx, r.db).Preload("Department").Where("email = ?", email).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := database.Conn(ctx, r.db).Preload("Department").Order("id ASC").Find(&employees).Error
	return employees, err
}

// GetAllInDepartment lists the employees of one department, used to pick assignees.
func (r *EmployeeRepository) GetAllInDepartment(ctx context.Context, departmentName string) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := database.Conn(ctx, r.db).
		Preload("Department").
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("departments.name = ?", departmentName).
		Order("employees.id ASC").
		Find(&employees).Error
	return employees, err
}
