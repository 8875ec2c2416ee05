package auth

import (
	"strings"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/common/validation"
)

// LoginDTO carries the credentials entered at the login prompt.
type LoginDTO struct {
	Email    string
	Password string
}

func (d LoginDTO) Normalized() LoginDTO {
	return LoginDTO{Email: strings.ToLower(strings.TrimSpace(d.Email)), Password: d.Password}
}

// Validate checks required fields.
func (d LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	return v.Validate()
}
