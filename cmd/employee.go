package cmd

import (
	"context"
	"fmt"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/department"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/employee"
	"github.com/spf13/cobra"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Manage employees",
}

var employeeFlags struct {
	fname      string
	lname      string
	email      string
	password   string
	department int64
	list       string
}

var createEmployeeCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				f := employeeFlags
				var err error
				if f.fname, err = ask(deps.Prompter, "First name", f.fname); err != nil {
					return err
				}
				if f.lname, err = ask(deps.Prompter, "Last name", f.lname); err != nil {
					return err
				}
				if f.email, err = ask(deps.Prompter, "Email", f.email); err != nil {
					return err
				}
				if f.password, err = askSecret(deps.Prompter, "Password", f.password); err != nil {
					return err
				}
				if f.department, err = askID(deps.Prompter, "Department id", f.department); err != nil {
					return err
				}

				created, err := deps.Employees.Create(ctx, p, employee.CreateEmployeeDTO{
					FirstName:    f.fname,
					LastName:     f.lname,
					Email:        f.email,
					Password:     f.password,
					DepartmentID: f.department,
				})
				if err != nil {
					return err
				}
				success(fmt.Sprintf("Employee %s created with id %d.", created.FullName(), created.ID))
				return nil
			}, auth.CreateEmployee)(ctx)
		})
	},
}

var updateEmployeeCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an employee; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := parseID("id", args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				var dto employee.UpdateEmployeeDTO
				flags := cmd.Flags()
				if flags.Changed("fname") {
					dto.FirstName = &employeeFlags.fname
				}
				if flags.Changed("lname") {
					dto.LastName = &employeeFlags.lname
				}
				if flags.Changed("email") {
					dto.Email = &employeeFlags.email
				}
				if flags.Changed("department") {
					dto.DepartmentID = &employeeFlags.department
				}
				if flags.Changed("password") {
					dto.Password = &employeeFlags.password
				}
				if dto.IsEmpty() {
					warning("Nothing to update.")
					return nil
				}

				updated, err := deps.Employees.Update(ctx, p, employeeID, dto)
				if err != nil {
					return err
				}
				success(fmt.Sprintf("Employee %d updated (%s, %s).", updated.ID, updated.Email, updated.DepartmentName))
				return nil
			}, auth.UpdateEmployee)(ctx)
		})
	},
}

var deleteEmployeeCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := parseID("id", args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				if err := deps.Employees.Delete(ctx, p, employeeID); err != nil {
					return err
				}
				success(fmt.Sprintf("Employee %d deleted.", employeeID))
				return nil
			}, auth.DeleteEmployee)(ctx)
		})
	},
}

var listEmployeeCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.RequireAuthentication(func(ctx context.Context, p *auth.Principal) error {
				employees, err := deps.Employees.List(ctx, p, employeeFlags.list)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(employees))
				for _, e := range employees {
					rows = append(rows, []string{id(e.ID), e.FirstName, e.LastName, e.Email, e.DepartmentName})
				}
				table(stdout(), []string{"id", "first name", "last name", "email", "department"}, rows)
				return nil
			})(ctx)
		})
	},
}

var departmentCmd = &cobra.Command{
	Use:   "department",
	Short: "Inspect departments",
}

var listDepartmentCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments and their permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.RequireAuthentication(func(ctx context.Context, p *auth.Principal) error {
				departments, err := deps.Departments.List(ctx, p)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(departments))
				for _, d := range departments {
					rows = append(rows, []string{id(d.ID), d.Name, permissionsLabel(deps, d)})
				}
				table(stdout(), []string{"id", "name", "permissions"}, rows)
				return nil
			})(ctx)
		})
	},
}

func permissionsLabel(deps *Dependencies, d *department.Department) string {
	if d.Name == deps.Config.Departments.Superuser {
		return "all"
	}
	if len(d.Permissions) == 0 {
		return "-"
	}
	return fmt.Sprint(d.Permissions)
}

func init() {
	for _, c := range []*cobra.Command{createEmployeeCmd, updateEmployeeCmd} {
		c.Flags().StringVar(&employeeFlags.fname, "fname", "", "first name")
		c.Flags().StringVar(&employeeFlags.lname, "lname", "", "last name")
		c.Flags().StringVar(&employeeFlags.email, "email", "", "email")
		c.Flags().StringVar(&employeeFlags.password, "password", "", "password")
		c.Flags().Int64Var(&employeeFlags.department, "department", 0, "department id")
	}
	listEmployeeCmd.Flags().StringVar(&employeeFlags.list, "department", "", "only list this department")

	employeeCmd.AddCommand(createEmployeeCmd, updateEmployeeCmd, deleteEmployeeCmd, listEmployeeCmd)
	departmentCmd.AddCommand(listDepartmentCmd)
}
