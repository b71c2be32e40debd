// Package validation wraps go-playground/validator behind a single helper that
// converts tag violations into the application's ValidationError, carrying a
// message per offending field. Field constraints live as struct tags on the
// request DTOs; handlers call Struct after decoding.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/spendshift-go/apperror"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report JSON field names instead of Go struct field names so that error
	// details line up with what the client actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct validates a request DTO and returns a ValidationError with per-field
// detail when any constraint is violated, or nil when the value is valid.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// validator returns InvalidValidationError for non-struct input; that
		// is a programming error, not a client error.
		return apperror.NewInternalError("validation failed", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return apperror.NewFieldValidationError("validation failed", fields)
}

// messageFor renders a human-readable message for a single tag violation.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
