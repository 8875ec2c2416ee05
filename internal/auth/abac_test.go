package auth

import (
	"context"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Ownership policy", func() {
	var (
		ctx     context.Context
		policy  *OwnershipPolicy
		sales   *Principal
		support *Principal
		manager *Principal
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		policy = NewOwnershipPolicy(internal.DefaultConfig().Departments)
		sales = &Principal{Identity: &Identity{ID: 4, DepartmentName: "Sales"}}
		support = &Principal{Identity: &Identity{ID: 6, DepartmentName: "Support"}}
		manager = &Principal{Identity: &Identity{ID: 2, DepartmentName: "Management"}}
	})

	ginkgo.It("should let a salesperson act on their own client only", func() {
		gomega.Expect(policy.RequireClientOwner(ctx, sales, 4, "not yours")).To(gomega.Succeed())

		err := policy.RequireClientOwner(ctx, sales, 5, "not yours")
		gomega.Expect(internal.IsType(err, internal.ErrorTypePermissionDenied)).To(gomega.BeTrue())
		gomega.Expect(err.Error()).To(gomega.Equal("not yours"))
	})

	ginkgo.It("should not restrict other departments on client ownership", func() {
		gomega.Expect(policy.RequireClientOwner(ctx, manager, 5, "not yours")).To(gomega.Succeed())
	})

	ginkgo.It("should let support act only on assigned events", func() {
		mine := int64(6)
		other := int64(7)
		gomega.Expect(policy.RequireEventAssignee(ctx, support, &mine)).To(gomega.Succeed())
		gomega.Expect(internal.IsType(policy.RequireEventAssignee(ctx, support, &other), internal.ErrorTypePermissionDenied)).To(gomega.BeTrue())
		gomega.Expect(internal.IsType(policy.RequireEventAssignee(ctx, support, nil), internal.ErrorTypePermissionDenied)).To(gomega.BeTrue())
		gomega.Expect(policy.RequireEventAssignee(ctx, manager, nil)).To(gomega.Succeed())
	})
})
