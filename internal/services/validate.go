package services

import (
	"errors"

	"yelpcamp/internal/validation"
)

type normalizer interface {
	Normalize()
}

// checkForm normalizes v and validates the result, so the values checked are
// the values stored.
func checkForm(v normalizer) error {
	v.Normalize()
	err := validation.Struct(v)
	if err == nil {
		return nil
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return &Error{Kind: KindValidation, Message: verr.Error(), Err: err}
	}
	return Internal(err)
}
