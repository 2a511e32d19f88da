package catalog

import "fmt"

// Code is a remote error code reported by the catalog service for one
// operation. CodeOK means the operation carries no error.
type Code int

const (
	CodeOK Code = iota
	CodeBadRequest
	CodeUnauthorized
	CodeRateLimited
	CodeServiceUnavailable
	CodeNetwork
	CodeOther
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeBadRequest:
		return "bad request"
	case CodeUnauthorized:
		return "unauthorized"
	case CodeRateLimited:
		return "rate limited"
	case CodeServiceUnavailable:
		return "service unavailable"
	case CodeNetwork:
		return "network error"
	default:
		return "unknown error"
	}
}

// Err maps the code to a Go error. CodeOK maps to nil; any other code maps to
// a [*RemoteError] carrying the code verbatim.
func (c Code) Err() error {
	if c == CodeOK {
		return nil
	}
	return &RemoteError{Code: c}
}

// RemoteError wraps a non-zero remote error code.
type RemoteError struct {
	Code Code
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("catalog error: %s (code %d)", e.Code, int(e.Code))
}
