package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. Handlers map kinds to responses.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindPermission
	KindExternal
	KindAuthentication
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission"
	case KindExternal:
		return "external service"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// User-facing messages.
const (
	MsgListingNotFound    = "Cannot find that campground!"
	MsgPermissionDenied   = "You do not have permission to do that!"
	MsgGeocodeFailed      = "Could not geocode that location. Please try again and enter a valid location."
	MsgImageUploadFailed  = "Could not upload images. Please try again."
	MsgInvalidCredentials = "Password or username is incorrect"
	MsgInvalidToken       = "invalid or expired token"
	MsgUsernameTaken      = "A user with the given username is already registered"
	MsgEmailTaken         = "A user with the given email is already registered"
	MsgInternal           = "Oh No, Something Went Wrong!"
)

// Error is a classified service failure. Message is safe to show to users.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrForbidden       = &Error{Kind: KindPermission}
	ErrExternal        = &Error{Kind: KindExternal}
	ErrUnauthenticated = &Error{Kind: KindAuthentication}
	ErrConflict        = &Error{Kind: KindConflict}
)

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }
func Permission(msg string) *Error     { return &Error{Kind: KindPermission, Message: msg} }
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }
func Conflict(msg string) *Error       { return &Error{Kind: KindConflict, Message: msg} }

func External(msg string, err error) *Error {
	return &Error{Kind: KindExternal, Message: msg, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage is the text shown to users for err. Internal details never leak.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal && e.Message != "" {
		return e.Message
	}
	return MsgInternal
}
