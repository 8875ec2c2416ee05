package employee_test

import (
	"context"
	"testing"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database/dbtest"
	departmentPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/department/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/employee"
	employeePostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/employee/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestEmployee(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Suite")
}

func principal(id, departmentID int64, department string, perms ...string) *auth.Principal {
	return &auth.Principal{
		Identity: &auth.Identity{
			ID:             id,
			Email:          "caller@epic.com",
			DepartmentID:   departmentID,
			DepartmentName: department,
		},
		Permissions: auth.NewPermissionSet(perms...),
	}
}

var _ = Describe("Employee Service", func() {
	var (
		db      *gorm.DB
		repo    *employeePostgres.EmployeeRepository
		service *employee.Service
		hasher  *auth.BcryptHasher
		manager *auth.Principal
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())

		ctx = context.Background()
		repo = employeePostgres.NewEmployeeRepository(db)
		hasher = auth.NewBcryptHasher(bcrypt.MinCost)
		checker := auth.NewPermissionChecker(nil, "Superuser")
		service = employee.NewService(
			repo,
			departmentPostgres.NewDepartmentRepository(db),
			hasher,
			database.NewTransactor(db),
			checker,
			logger.LoggerWrapper(),
		)

		m, err := dbtest.CreateEmployee(db, "manager@epic.com", dbtest.ManagementDepartmentID)
		Expect(err).NotTo(HaveOccurred())
		manager = principal(m.ID, dbtest.ManagementDepartmentID, "Management",
			auth.CreateEmployee, auth.UpdateEmployee, auth.DeleteEmployee)
	})

	Describe("Create", func() {
		It("should normalise names and hash the password", func() {
			created, err := service.Create(ctx, manager, employee.CreateEmployeeDTO{
				FirstName:    "jane",
				LastName:     "doe",
				Email:        " Jane.Doe@Epic.com ",
				Password:     "s3cret",
				DepartmentID: dbtest.SalesDepartmentID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.FirstName).To(Equal("Jane"))
			Expect(created.LastName).To(Equal("DOE"))
			Expect(created.Email).To(Equal("jane.doe@epic.com"))
			Expect(created.DepartmentName).To(Equal("Sales"))

			stored, err := repo.GetByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.PasswordHash).NotTo(Equal("s3cret"))
			Expect(hasher.Verify(stored.PasswordHash, "s3cret")).To(BeTrue())
		})

		It("should refuse a taken email", func() {
			_, err := service.Create(ctx, manager, employee.CreateEmployeeDTO{
				FirstName: "Other", LastName: "Manager", Email: "manager@epic.com",
				Password: "pw", DepartmentID: dbtest.ManagementDepartmentID,
			})
			Expect(err).To(MatchError(employee.ErrEmailTaken))
		})

		It("should refuse an unknown department", func() {
			_, err := service.Create(ctx, manager, employee.CreateEmployeeDTO{
				FirstName: "Lost", LastName: "Soul", Email: "lost@epic.com",
				Password: "pw", DepartmentID: 42,
			})
			Expect(internal.IsType(err, internal.ErrorTypeNotFound)).To(BeTrue())
		})

		It("should reject an invalid email before touching storage", func() {
			_, err := service.Create(ctx, manager, employee.CreateEmployeeDTO{
				FirstName: "Bad", LastName: "Email", Email: "nope",
				Password: "pw", DepartmentID: dbtest.SalesDepartmentID,
			})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})

		It("should deny callers without create_employee", func() {
			sales := principal(99, dbtest.SalesDepartmentID, "Sales", auth.CreateClient)
			_, err := service.Create(ctx, sales, employee.CreateEmployeeDTO{
				FirstName: "A", LastName: "B", Email: "a@epic.com", Password: "pw", DepartmentID: 3,
			})
			Expect(err).To(MatchError(internal.ErrInsufficientPermissions))

			all, err := repo.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
		})

		It("should let the superuser sentinel through", func() {
			admin := principal(1, dbtest.SuperuserDepartmentID, "Superuser", auth.Superuser)
			_, err := service.Create(ctx, admin, employee.CreateEmployeeDTO{
				FirstName: "New", LastName: "Hire", Email: "new@epic.com", Password: "pw", DepartmentID: 4,
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Update", func() {
		var target *employee.Employee

		BeforeEach(func() {
			var err error
			target, err = service.Create(ctx, manager, employee.CreateEmployeeDTO{
				FirstName: "Sam", LastName: "Support", Email: "sam@epic.com",
				Password: "first", DepartmentID: dbtest.SupportDepartmentID,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep the password hash when no password is supplied", func() {
			before, _ := repo.GetByID(ctx, target.ID)
			department := dbtest.SalesDepartmentID

			updated, err := service.Update(ctx, manager, target.ID, employee.UpdateEmployeeDTO{DepartmentID: &department})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.DepartmentName).To(Equal("Sales"))

			after, _ := repo.GetByID(ctx, target.ID)
			Expect(after.PasswordHash).To(Equal(before.PasswordHash))
		})

		It("should re-hash a supplied password", func() {
			password := "second"
			_, err := service.Update(ctx, manager, target.ID, employee.UpdateEmployeeDTO{Password: &password})
			Expect(err).NotTo(HaveOccurred())

			after, _ := repo.GetByID(ctx, target.ID)
			Expect(hasher.Verify(after.PasswordHash, "second")).To(BeTrue())
		})

		It("should refuse an email owned by someone else", func() {
			email := "manager@epic.com"
			_, err := service.Update(ctx, manager, target.ID, employee.UpdateEmployeeDTO{Email: &email})
			Expect(err).To(MatchError(employee.ErrEmailTaken))
		})

		It("should report a missing employee", func() {
			name := "ghost"
			_, err := service.Update(ctx, manager, 404, employee.UpdateEmployeeDTO{FirstName: &name})
			Expect(err).To(MatchError(employee.ErrEmployeeNotFound))
		})
	})

	Describe("Delete", func() {
		It("should delete another employee", func() {
			other, err := dbtest.CreateEmployee(db, "leaving@epic.com", dbtest.SupportDepartmentID)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, manager, other.ID)).To(Succeed())
			gone, err := repo.GetByID(ctx, other.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())
		})

		It("should refuse to delete the caller", func() {
			Expect(service.Delete(ctx, manager, manager.ID())).To(MatchError(employee.ErrCannotDeleteSelf))
		})

		It("should refuse to delete a salesperson who still has clients", func() {
			sales, err := dbtest.CreateEmployee(db, "busy@epic.com", dbtest.SalesDepartmentID)
			Expect(err).NotTo(HaveOccurred())
			_, err = dbtest.CreateClient(db, "client@corp.com", sales.ID)
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(ctx, manager, sales.ID)
			Expect(internal.IsType(err, internal.ErrorTypeStorage)).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("should require authentication", func() {
			_, err := service.List(ctx, nil, "")
			Expect(err).To(MatchError(internal.ErrNotAuthenticated))
		})

		It("should list employees with their department", func() {
			support := principal(50, dbtest.SupportDepartmentID, "Support", auth.UpdateEvent)
			all, err := service.List(ctx, support, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
			Expect(all[0].DepartmentName).To(Equal("Management"))
		})

		It("should filter by department name", func() {
			_, err := dbtest.CreateEmployee(db, "seller@epic.com", dbtest.SalesDepartmentID)
			Expect(err).NotTo(HaveOccurred())

			sales, err := service.List(ctx, manager, "Sales")
			Expect(err).NotTo(HaveOccurred())
			Expect(sales).To(HaveLen(1))
			Expect(sales[0].Email).To(Equal("seller@epic.com"))
		})
	})
})
