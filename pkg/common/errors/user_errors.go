// pkg/common/errors/user_errors.go

/*
  - Usage
    // service layer:
    return model.User{}, errors.NewNotFound("user not found: " + id.String())

    // handler layer: attach to the hertz error chain, the error middleware renders it
    _ = c.Error(err)

    // anywhere:
    if errors.KindOf(err) == errors.KindNotFound {
    // ...
    }
*/
package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
)

// Status maps the kind to an HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Sentinel errors shared by the repository and service layers.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEntry   = errors.New("email already registered")
	ErrDatabaseInternal = errors.New("database internal error")
)

// Error is a classified application error. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	return e.Kind.Status()
}

func NewNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Err: ErrUserNotFound}
}

func NewInvalid(msg string, cause error) *Error {
	return &Error{Kind: KindInvalid, Message: msg, Err: cause}
}

func NewConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: ErrDuplicateEntry}
}

func NewInternal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf reports the kind of err. Unclassified errors are KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
