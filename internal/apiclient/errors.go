package apiclient

import "errors"

var (
	// ErrUnauthorized indicates the server rejected the session token. The
	// caller should drop its session and sign in again.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession indicates the context carries no session to authenticate with.
	ErrNoSession = errors.New("no session in context")

	// ErrUnavailable indicates the server could not be reached.
	ErrUnavailable = errors.New("jardin server unavailable")

	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("jardin request timed out")
)

// APIError is a non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return "jardin api: " + e.Message
}
