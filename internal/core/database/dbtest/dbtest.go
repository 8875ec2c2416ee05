// Package dbtest opens throwaway SQLite databases with the full schema and reference data.
package dbtest

import (
	"fmt"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/client"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/contract"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/department"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/event"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	SuperuserDepartmentID  int64 = 1
	ManagementDepartmentID int64 = 2
	SalesDepartmentID      int64 = 3
	SupportDepartmentID    int64 = 4
)

var grants = map[string][]string{
	"Superuser":  {},
	"Management": {"create_employee", "update_employee", "delete_employee", "create_contract", "update_contract", "update_event"},
	"Sales":      {"create_client", "update_client", "delete_client", "update_contract", "create_event"},
	"Support":    {"update_event"},
}

var permissionNames = []string{
	"create_employee", "update_employee", "delete_employee",
	"create_client", "update_client", "delete_client",
	"create_contract", "update_contract", "delete_contract",
	"create_event", "update_event", "delete_event",
}

// Open returns an in-memory database with every table migrated and the
// departments, permissions and grants seeded.
func Open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&department.Permission{},
		&department.Department{},
		&employee.Employee{},
		&client.Client{},
		&contract.Contract{},
		&event.Event{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	if err := seed(db); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}

func seed(db *gorm.DB) error {
	perms := make(map[string]department.Permission, len(permissionNames))
	for _, name := range permissionNames {
		p := department.Permission{Name: name}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
		perms[name] = p
	}

	for i, name := range []string{"Superuser", "Management", "Sales", "Support"} {
		d := department.Department{ID: int64(i + 1), Name: name}
		for _, g := range grants[name] {
			d.Permissions = append(d.Permissions, perms[g])
		}
		if err := db.Create(&d).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateEmployee inserts an employee with a placeholder hash.
func CreateEmployee(db *gorm.DB, email string, departmentID int64) (*employee.Employee, error) {
	e := &employee.Employee{
		FirstName:    "Test",
		LastName:     "EMPLOYEE",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		DepartmentID: departmentID,
	}
	if err := db.Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func CreateClient(db *gorm.DB, email string, salespersonID int64) (*client.Client, error) {
	c := &client.Client{
		FirstName:     "Client",
		LastName:      "TEST",
		Email:         email,
		SalespersonID: salespersonID,
	}
	if err := db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}
