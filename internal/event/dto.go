package event

import (
	"strings"
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/common/validation"
)

// CreateEventDTO carries dates as typed by the user, in validation.DateLayout.
type CreateEventDTO struct {
	Name            string
	StartDate       string
	EndDate         string
	AddressLine1    string
	City            string
	Country         string
	PostalCode      string
	AttendeesNumber int
	ContractID      int64
	Notes           string
}

func (dto *CreateEventDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.AddressLine1 = strings.TrimSpace(dto.AddressLine1)
	dto.City = strings.TrimSpace(dto.City)
	dto.Country = strings.TrimSpace(dto.Country)
	dto.PostalCode = strings.TrimSpace(dto.PostalCode)
	dto.Notes = strings.TrimSpace(dto.Notes)
}

// Validate checks every field and returns the parsed start and end.
func (dto CreateEventDTO) Validate() (time.Time, time.Time, *internal.AppError) {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("address_line1", dto.AddressLine1).MaxLength(255)
	v.Field("city", dto.City).MaxLength(50)
	v.Field("country", dto.Country).MaxLength(25)
	v.Field("postal_code", dto.PostalCode).MaxLength(20)
	v.Field("attendees_number", dto.AttendeesNumber).MinInt(0, internal.ErrCodeValidationFailed)
	v.Field("contract_id", dto.ContractID).Required()
	if appErr := v.Validate(); appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}
	return parseRange(dto.StartDate, dto.EndDate)
}

type UpdateEventDTO struct {
	Name            *string
	StartDate       *string
	EndDate         *string
	AddressLine1    *string
	City            *string
	Country         *string
	PostalCode      *string
	AttendeesNumber *int
	Notes           *string
	SupportPersonID *int64
}

func (dto UpdateEventDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(100)
	}
	if dto.AddressLine1 != nil {
		v.Field("address_line1", *dto.AddressLine1).MaxLength(255)
	}
	if dto.City != nil {
		v.Field("city", *dto.City).MaxLength(50)
	}
	if dto.Country != nil {
		v.Field("country", *dto.Country).MaxLength(25)
	}
	if dto.PostalCode != nil {
		v.Field("postal_code", *dto.PostalCode).MaxLength(20)
	}
	if dto.AttendeesNumber != nil {
		v.Field("attendees_number", *dto.AttendeesNumber).MinInt(0, internal.ErrCodeValidationFailed)
	}
	if dto.SupportPersonID != nil {
		v.Field("support_person_id", *dto.SupportPersonID).Required()
	}
	return v.Validate()
}

func parseRange(rawStart, rawEnd string) (time.Time, time.Time, *internal.AppError) {
	start, appErr := validation.ParseDate("start_date", rawStart)
	if appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}
	end, appErr := validation.ParseDate("end_date", rawEnd)
	if appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}
	if appErr := validation.ValidateDateRange(start, end); appErr != nil {
		return time.Time{}, time.Time{}, appErr
	}
	return start, end, nil
}

// ListFilter narrows an event listing.
type ListFilter struct {
	Unassigned bool
}
