package event

import (
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	eventDatamodel "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/datamodel/event"
)

type Event struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	StartDatetime     time.Time `json:"start_datetime"`
	EndDatetime       time.Time `json:"end_datetime"`
	AddressLine1      string    `json:"address_line1"`
	City              string    `json:"city"`
	Country           string    `json:"country"`
	PostalCode        string    `json:"postal_code"`
	AttendeesNumber   int       `json:"attendees_number"`
	Notes             string    `json:"notes,omitempty"`
	ContractID        int64     `json:"contract_id"`
	ClientName        string    `json:"client,omitempty"`
	SupportPersonID   *int64    `json:"support_person_id,omitempty"`
	SupportPersonName string    `json:"support_person,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

var (
	ErrEventNotFound       = internal.NewNotFoundError("Event not found.", internal.ErrCodeEventNotFound)
	ErrContractNotFound    = internal.NewValidationFieldError("contract_id", "Contract not found.", internal.ErrCodeContractNotFound)
	ErrContractNotSigned   = internal.NewValidationFieldError("contract_id", "Contract must be signed before an event can be created.", internal.ErrCodeValidationFailed)
	ErrContractHasEvent    = internal.NewConflictError("This contract already has an event.", internal.ErrCodeContractHasEvent)
	ErrSupportNotFound     = internal.NewValidationFieldError("support_person_id", "Employee not found.", internal.ErrCodeEmployeeNotFound)
	ErrNotSupportPersonnel = internal.NewValidationFieldError("support_person_id", "Employee must be in the Support department.", internal.ErrCodeWrongDepartment)
)

const notOwnerMessage = "You can only create events for your own clients."

func FromDataModel(e *eventDatamodel.Event) *Event {
	result := &Event{
		ID:              e.ID,
		Name:            e.Name,
		StartDatetime:   e.StartDatetime,
		EndDatetime:     e.EndDatetime,
		AddressLine1:    e.AddressLine1,
		City:            e.City,
		Country:         e.Country,
		PostalCode:      e.PostalCode,
		AttendeesNumber: e.AttendeesNumber,
		ContractID:      e.ContractID,
		SupportPersonID: e.SupportPersonID,
		CreatedAt:       e.CreatedAt,
	}
	if e.Notes != nil {
		result.Notes = *e.Notes
	}
	if e.Contract != nil && e.Contract.Client != nil {
		result.ClientName = e.Contract.Client.FirstName + " " + e.Contract.Client.LastName
	}
	if e.SupportPerson != nil {
		result.SupportPersonName = e.SupportPerson.FirstName + " " + e.SupportPerson.LastName
	}
	return result
}
