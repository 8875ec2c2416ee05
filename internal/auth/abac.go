package auth

import (
	"context"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
)

// OwnershipPolicy enforces the relationship rules layered on top of department permissions:
// salespeople act only on their own clients and support staff only on their own events.
type OwnershipPolicy struct {
	departments internal.DepartmentsConfig
}

func NewOwnershipPolicy(departments internal.DepartmentsConfig) *OwnershipPolicy {
	return &OwnershipPolicy{departments: departments}
}

func (o *OwnershipPolicy) IsSales(p *Principal) bool {
	return p.InDepartment(o.departments.Sales)
}

func (o *OwnershipPolicy) IsSupport(p *Principal) bool {
	return p.InDepartment(o.departments.Support)
}

// RequireClientOwner rejects a salesperson acting on a client assigned to someone else.
func (o *OwnershipPolicy) RequireClientOwner(ctx context.Context, p *Principal, salespersonID int64, message string) error {
	if !o.IsSales(p) || p.ID() == salespersonID {
		return nil
	}
	logger.From(ctx).Warn("access denied: not the client's salesperson",
		"employee_id", p.ID(), "salesperson_id", salespersonID)
	return internal.NewPermissionDeniedError(message, internal.ErrCodeNotOwner)
}

// RequireEventAssignee rejects a support employee acting on an event not assigned to them.
func (o *OwnershipPolicy) RequireEventAssignee(ctx context.Context, p *Principal, supportPersonID *int64) error {
	if !o.IsSupport(p) {
		return nil
	}
	if supportPersonID != nil && *supportPersonID == p.ID() {
		return nil
	}
	logger.From(ctx).Warn("access denied: event not assigned to caller", "employee_id", p.ID())
	return internal.NewPermissionDeniedError("You can only update events assigned to you.", internal.ErrCodeNotOwner)
}

func (o *OwnershipPolicy) SalesDepartment() string {
	return o.departments.Sales
}

func (o *OwnershipPolicy) SupportDepartment() string {
	return o.departments.Support
}
