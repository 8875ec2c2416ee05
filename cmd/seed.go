package cmd

import (
	"context"
	"fmt"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	employeeDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/employee"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/department"
	departmentPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/department/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/employee"
	employeePostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/employee/postgres"
	"github.com/spf13/cobra"
)

var seedFlags struct {
	email    string
	password string
	fname    string
	lname    string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the first superuser employee",
	Long:  `Create the first superuser employee once the migrations have run. Without a password flag the password is prompted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			email, err := ask(deps.Prompter, "Email", seedFlags.email)
			if err != nil {
				return err
			}
			password, err := askSecret(deps.Prompter, "Password", seedFlags.password)
			if err != nil {
				return err
			}
			return seedSuperuser(ctx, deps, employee.CreateEmployeeDTO{
				FirstName: seedFlags.fname,
				LastName:  seedFlags.lname,
				Email:     email,
				Password:  password,
			})
		})
	},
}

// seedSuperuser writes through the repository directly since no one can be logged in yet.
func seedSuperuser(ctx context.Context, deps *Dependencies, dto employee.CreateEmployeeDTO) error {
	departments := departmentPostgres.NewDepartmentRepository(deps.DB)
	employees := employeePostgres.NewEmployeeRepository(deps.DB)

	superuser, err := departments.GetByName(ctx, deps.Config.Departments.Superuser)
	if err != nil {
		return internal.NewStorageError("failed to load departments", internal.ErrCodeStorage, err)
	}
	if superuser == nil {
		warning("Run `eecrm migrate` first.")
		return department.ErrDepartmentNotFound
	}

	dto.DepartmentID = superuser.ID
	dto.Normalize()
	if appErr := dto.Validate(); appErr != nil {
		return appErr
	}

	existing, err := employees.GetByEmail(ctx, dto.Email)
	if err != nil {
		return internal.NewStorageError("failed to look up employee", internal.ErrCodeStorage, err)
	}
	if existing != nil {
		warning(fmt.Sprintf("Employee %s already exists; nothing to do.", dto.Email))
		return nil
	}

	hash, err := deps.Hasher.Hash(dto.Password)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}
	e := &employeeDatamodel.Employee{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PasswordHash: hash,
		DepartmentID: superuser.ID,
	}
	if err := employees.Create(ctx, e); err != nil {
		return internal.NewStorageError("failed to create superuser", internal.ErrCodeStorage, err)
	}

	deps.Logger.Info("superuser seeded", "employee_id", e.ID)
	success(fmt.Sprintf("Superuser %s created with id %d.", e.Email, e.ID))
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&seedFlags.email, "email", "", "superuser email")
	seedCmd.Flags().StringVar(&seedFlags.password, "password", "", "superuser password (prompted when omitted)")
	seedCmd.Flags().StringVar(&seedFlags.fname, "fname", "Admin", "first name")
	seedCmd.Flags().StringVar(&seedFlags.lname, "lname", "Epic", "last name")
}
