package api

import (
	"errors"
	"strings"
)

var (
	// ErrAuthInvalid means the gateway rejected the stored password on a data
	// call. It is the only failure that forces a sign-out.
	ErrAuthInvalid = errors.New("invalid password")
	// ErrAuthRejected means an explicit login attempt used the wrong password.
	ErrAuthRejected = errors.New("incorrect password")
	// ErrConnectivity wraps transport failures (DNS, refused, TLS, status).
	ErrConnectivity = errors.New("could not connect")
	// ErrServer wraps an ok=false response from the gateway.
	ErrServer = errors.New("gateway error")
	// ErrInvalidResponse means the gateway returned something that was not JSON.
	ErrInvalidResponse = errors.New("Invalid response from server")
)

// invalidPasswordMarker is the text the gateway puts in its error string
// when the shared password no longer matches.
const invalidPasswordMarker = "Invalid password"

// IsAuthInvalid reports whether err signals an invalidated session.
func IsAuthInvalid(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrAuthInvalid) || strings.Contains(err.Error(), invalidPasswordMarker)
}

// serverError carries the gateway's error text while matching ErrServer or,
// when the text names an invalid password, ErrAuthInvalid.
type serverError struct {
	msg string
}

func (e *serverError) Error() string {
	return e.msg
}

func (e *serverError) Is(target error) bool {
	if target == ErrServer {
		return true
	}
	return target == ErrAuthInvalid && strings.Contains(e.msg, invalidPasswordMarker)
}

func newServerError(msg, fallback string) error {
	if strings.TrimSpace(msg) == "" {
		msg = fallback
	}
	return &serverError{msg: msg}
}
