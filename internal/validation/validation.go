// Package validation checks request payloads before they reach the services.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Error carries one message per failed field, in field order.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, ", ")
}

// Struct validates v against its validate tags. It returns nil or an *Error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	out := &Error{}
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := message(fe)
		if seen[msg] {
			continue
		}
		seen[msg] = true
		out.Messages = append(out.Messages, msg)
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		if isText {
			return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "containsany":
		return fmt.Sprintf("%q must contain an uppercase letter, a digit and one of @$!%%*?&", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

var imageFormats = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// Image accepts jpeg, jpg and png uploads by file extension.
func Image(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageFormats[ext] {
		return &Error{Messages: []string{fmt.Sprintf("%q is not a jpeg, jpg or png image", filepath.Base(filename))}}
	}
	return nil
}
