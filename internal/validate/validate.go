// Package validate checks request payloads before any repository call is
// made. A failed check never mutates state.
package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

func Struct(s any) error {
	return v.Struct(s)
}

// Message turns the first validation failure into the user-visible text.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	switch {
	case fe.Tag() == "required":
		return "fill in all required fields"
	case fe.Tag() == "email":
		return "invalid email address"
	case fe.Tag() == "min" && fe.Field() == "Password":
		return "password must be at least 6 characters"
	case fe.Tag() == "eqfield":
		return "passwords do not match"
	default:
		return "invalid request"
	}
}
