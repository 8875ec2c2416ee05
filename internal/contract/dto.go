package contract

import (
	"strings"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type CreateContractDTO struct {
	ClientID int64
	Amount   decimal.Decimal
}

func (dto CreateContractDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("client_id", dto.ClientID).Required()
	v.Field("amount", dto.Amount).NonNegativeAmount()
	return v.Validate()
}

type UpdateContractDTO struct {
	TotalAmount *decimal.Decimal
	PaidAmount  *decimal.Decimal
	Signed      *bool
	ClientEmail *string
}

func (dto *UpdateContractDTO) Normalize() {
	if dto.ClientEmail != nil {
		v := strings.ToLower(strings.TrimSpace(*dto.ClientEmail))
		dto.ClientEmail = &v
	}
}

func (dto UpdateContractDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.TotalAmount != nil {
		v.Field("total_amount", *dto.TotalAmount).NonNegativeAmount()
	}
	if dto.PaidAmount != nil {
		v.Field("paid_amount", *dto.PaidAmount).NonNegativeAmount()
	}
	if dto.ClientEmail != nil {
		v.Field("client_email", *dto.ClientEmail).Required().Email()
	}
	return v.Validate()
}

// ListFilter narrows a contract listing; at most one flag may be set.
type ListFilter struct {
	Unpaid   bool
	Unsigned bool
	NoEvent  bool
}

func (f ListFilter) Validate() *internal.AppError {
	set := 0
	for _, flag := range []bool{f.Unpaid, f.Unsigned, f.NoEvent} {
		if flag {
			set++
		}
	}
	if set > 1 {
		return ErrExclusiveFilters
	}
	return nil
}
