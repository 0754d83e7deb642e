package faapi

import (
	"errors"
	"fmt"
)

// Application error codes. These are transport-agnostic within the domain;
// the http package maps them to status codes at the boundary.
const (
	EINTERNAL     = "internal"      // unexpected failure
	EINVALID      = "invalid"       // bad input, including undecodable page content
	ENOTFOUND     = "not_found"     // entity does not exist
	EUNAUTHORIZED = "unauthorized"  // login required or cookies rejected
	EFORBIDDEN    = "forbidden"     // path disallowed by robots rules
	EUNAVAILABLE  = "unavailable"   // upstream returned a server error
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("faapi error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of an application error, or EINTERNAL for
// non-application errors. A nil error returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of an application error. Internal and
// non-application errors return a generic message so internal details are
// not leaked to clients. A nil error returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}
	return "Internal error."
}
