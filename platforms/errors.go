package platforms

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthRequired means no credential is stored for a league that needs
	// one. No network call was made.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials means the stored credential was rejected. The
	// credential has already been purged; callers must prompt for
	// re-authentication, never retry.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrLeagueNotFound = errors.New("league not found")

	ErrInvalidResponse = errors.New("invalid response from platform")
)

// ServerError is a 5xx or 429 from the platform. It is the only HTTP-level
// error class the retry policy re-attempts.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("platform server error: status %d", e.StatusCode)
}

func (e *ServerError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ParsingError means the platform's response could not be decoded or did not
// have the expected shape. Never retried and never swallowed into an empty
// result.
type ParsingError struct {
	Detail string
	Err    error
}

func (e *ParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error parsing platform response: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("error parsing platform response: %s", e.Detail)
}

func (e *ParsingError) Unwrap() error { return e.Err }

// MissingFieldError means a required top-level field was absent from an
// otherwise well-formed response.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("platform response missing required field: %s", e.Field)
}
