package postgres_test

import (
	"context"
	"testing"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database/dbtest"
	departmentPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/department/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDepartmentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Postgres Suite")
}

var _ = Describe("Department Repository", func() {
	var (
		repo *departmentPostgres.DepartmentRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		db, err := dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = departmentPostgres.NewDepartmentRepository(db)
		ctx = context.Background()
	})

	It("should list the four seeded departments in id order", func() {
		departments, err := repo.GetAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(departments).To(HaveLen(4))
		Expect(departments[0].Name).To(Equal("Superuser"))
		Expect(departments[2].Name).To(Equal("Sales"))
		Expect(departments[2].PermissionNames()).To(Equal([]string{
			"create_client", "create_event", "delete_client", "update_client", "update_contract",
		}))
	})

	It("should get a department by name with its permissions", func() {
		d, err := repo.GetByName(ctx, "Support")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.PermissionNames()).To(Equal([]string{"update_event"}))
	})

	It("should return nil when not found", func() {
		d, err := repo.GetByID(ctx, 99)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeNil())
	})
})
