package event_test

import (
	"context"
	"testing"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	contractPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/contract/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database/dbtest"
	contractDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/contract"
	employeePostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/employee/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/event"
	eventPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/event/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestEvent(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Suite")
}

func principal(id int64, department string, perms ...string) *auth.Principal {
	return &auth.Principal{
		Identity:    &auth.Identity{ID: id, DepartmentName: department},
		Permissions: auth.NewPermissionSet(perms...),
	}
}

func strPtr(s string) *string { return &s }

var _ = Describe("Event Service", func() {
	var (
		db         *gorm.DB
		service    *event.Service
		ctx        context.Context
		seller     *auth.Principal
		rival      *auth.Principal
		manager    *auth.Principal
		support    *auth.Principal
		signedID   int64
		unsignedID int64
		rivalID    int64
	)

	newContract := func(clientID int64, signed bool) int64 {
		c := &contractDatamodel.Contract{
			ClientID:    clientID,
			TotalAmount: decimal.NewFromInt(500),
			DueAmount:   decimal.NewFromInt(500),
			Signed:      signed,
		}
		Expect(db.Create(c).Error).To(Succeed())
		return c.ID
	}

	validDTO := func(contractID int64) event.CreateEventDTO {
		return event.CreateEventDTO{
			Name:            "John Quick Wedding",
			StartDate:       "2026-06-04 13:00",
			EndDate:         "2026-06-05 02:00",
			AddressLine1:    "53 Rue du Château",
			City:            "Candé-sur-Beuvron",
			Country:         "France",
			PostalCode:      "41120",
			AttendeesNumber: 75,
			ContractID:      contractID,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()

		employees := employeePostgres.NewEmployeeRepository(db)
		service = event.NewService(
			eventPostgres.NewEventRepository(db),
			contractPostgres.NewContractRepository(db),
			employees,
			auth.NewOwnershipPolicy(internal.DefaultConfig().Departments),
			database.NewTransactor(db),
			auth.NewPermissionChecker(nil, "Superuser"),
			logger.LoggerWrapper(),
		)

		s, err := dbtest.CreateEmployee(db, "seller@epic.com", dbtest.SalesDepartmentID)
		Expect(err).NotTo(HaveOccurred())
		r, err := dbtest.CreateEmployee(db, "rival@epic.com", dbtest.SalesDepartmentID)
		Expect(err).NotTo(HaveOccurred())
		sup, err := dbtest.CreateEmployee(db, "support@epic.com", dbtest.SupportDepartmentID)
		Expect(err).NotTo(HaveOccurred())
		rivalID = r.ID

		cl, err := dbtest.CreateClient(db, "client@corp.com", s.ID)
		Expect(err).NotTo(HaveOccurred())
		signedID = newContract(cl.ID, true)
		unsignedID = newContract(cl.ID, false)

		seller = principal(s.ID, "Sales", auth.CreateEvent)
		rival = principal(r.ID, "Sales", auth.CreateEvent)
		manager = principal(1, "Management", auth.UpdateEvent)
		support = principal(sup.ID, "Support", auth.UpdateEvent)
	})

	Describe("Create", func() {
		It("should create an event for a signed contract of the caller's client", func() {
			created, err := service.Create(ctx, seller, validDTO(signedID))
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ContractID).To(Equal(signedID))
			Expect(created.SupportPersonID).To(BeNil())
			Expect(created.StartDatetime.Hour()).To(Equal(13))
		})

		It("should allow only one event per contract", func() {
			_, err := service.Create(ctx, seller, validDTO(signedID))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, seller, validDTO(signedID))
			Expect(err).To(MatchError(event.ErrContractHasEvent))
		})

		It("should refuse an unsigned contract", func() {
			_, err := service.Create(ctx, seller, validDTO(unsignedID))
			Expect(err).To(MatchError(event.ErrContractNotSigned))
		})

		It("should refuse a salesperson who does not own the client", func() {
			_, err := service.Create(ctx, rival, validDTO(signedID))
			Expect(internal.IsType(err, internal.ErrorTypePermissionDenied)).To(BeTrue())
		})

		It("should reject reversed dates and negative attendees", func() {
			dto := validDTO(signedID)
			dto.EndDate = "2026-06-04 12:00"
			_, err := service.Create(ctx, seller, dto)
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())

			dto = validDTO(signedID)
			dto.AttendeesNumber = -1
			_, err = service.Create(ctx, seller, dto)
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})

		It("should reject a malformed date", func() {
			dto := validDTO(signedID)
			dto.StartDate = "04/06/2026"
			_, err := service.Create(ctx, seller, dto)
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		var eventID int64

		BeforeEach(func() {
			created, err := service.Create(ctx, seller, validDTO(signedID))
			Expect(err).NotTo(HaveOccurred())
			eventID = created.ID
		})

		It("should let management assign a support employee", func() {
			supportID := support.ID()
			updated, err := service.Update(ctx, manager, eventID, event.UpdateEventDTO{SupportPersonID: &supportID})
			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.SupportPersonID).To(Equal(supportID))

			unassigned, err := service.List(ctx, manager, event.ListFilter{Unassigned: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(unassigned).To(BeEmpty())

			mine, err := service.ListMine(ctx, support)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(1))
		})

		It("should refuse to assign someone outside Support", func() {
			_, err := service.Update(ctx, manager, eventID, event.UpdateEventDTO{SupportPersonID: &rivalID})
			Expect(err).To(MatchError(event.ErrNotSupportPersonnel))
		})

		It("should keep support staff to their own events", func() {
			_, err := service.Update(ctx, support, eventID, event.UpdateEventDTO{Notes: strPtr("hello")})
			Expect(internal.IsType(err, internal.ErrorTypePermissionDenied)).To(BeTrue())

			supportID := support.ID()
			_, err = service.Update(ctx, manager, eventID, event.UpdateEventDTO{SupportPersonID: &supportID})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(ctx, support, eventID, event.UpdateEventDTO{Notes: strPtr("Bring a DJ")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Notes).To(Equal("Bring a DJ"))
		})

		It("should validate a partial date change against the stored dates", func() {
			_, err := service.Update(ctx, manager, eventID, event.UpdateEventDTO{EndDate: strPtr("2026-06-01 10:00")})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())

			updated, err := service.Update(ctx, manager, eventID, event.UpdateEventDTO{EndDate: strPtr("2026-06-05 04:00")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.EndDatetime.Hour()).To(Equal(4))
		})
	})

	Describe("Delete", func() {
		It("should require delete_event", func() {
			created, err := service.Create(ctx, seller, validDTO(signedID))
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, manager, created.ID)).To(MatchError(internal.ErrInsufficientPermissions))

			admin := principal(1, "Superuser", auth.Superuser)
			Expect(service.Delete(ctx, admin, created.ID)).To(Succeed())
			_, err = service.GetByID(ctx, admin, created.ID)
			Expect(err).To(MatchError(event.ErrEventNotFound))
		})
	})
})
