package server

import (
	"errors"
	"net/http"

	"shoplist/internal/shared"
)

// ErrNotFound is returned by stores when no item has the requested id.
var ErrNotFound = errors.New("item not found")

// Kind classifies a failed operation independently of HTTP.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindStorage
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not-found"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Error is what handlers fail with. Msg is the client-facing message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func validationError(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

func notFoundError(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// storeError classifies an error coming back from a Store.
func storeError(err error) *Error {
	if errors.Is(err, ErrNotFound) {
		return &Error{Kind: KindNotFound, Msg: "Item not found", Err: err}
	}
	return &Error{Kind: KindStorage, Msg: err.Error(), Err: err}
}

// asError wraps anything that is not already an *Error as internal.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Msg: err.Error(), Err: err}
}

// StatusMapper turns an error kind into an HTTP status code.
type StatusMapper func(Kind) int

// LegacyStatus reports every failure as 400, whatever its cause.
func LegacyStatus(Kind) int { return http.StatusBadRequest }

func TypedStatus(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// StatusMapperFor picks the mapper for a configured error mode.
func StatusMapperFor(mode string) StatusMapper {
	if mode == shared.ErrorModeTyped {
		return TypedStatus
	}
	return LegacyStatus
}
