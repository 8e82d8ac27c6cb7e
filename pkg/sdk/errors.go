package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// genericServerMessage is used when an error response carries no usable message.
const genericServerMessage = "server error"

var (
	// ErrNotAuthenticated is returned when an operation needs a stored access token
	// and none is present. It is raised before any network call is made.
	ErrNotAuthenticated = errors.New("not authenticated: no access token stored, please sign in again")

	// ErrShareUnavailable is returned by a Sharer when the platform cannot open or
	// share an exported file.
	ErrShareUnavailable = errors.New("sharing is not available on this device")

	// ErrSessionStore marks a failure to read the local session store (locked
	// keyring, unreadable session file). No request is sent in that case.
	ErrSessionStore = errors.New("session store unavailable")
)

// APIError is the single error type produced by the request pipeline.
//
// StatusCode is the HTTP status returned by the backend, or 0 when no response
// was received. A status-0 error is either a transport failure (DNS, connection
// refused, timeout) or a local one raised before sending (IsLocal).
type APIError struct {
	Message    string
	StatusCode int
	Payload    any

	err   error
	local bool
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap exposes the underlying transport or local error, if any.
func (e *APIError) Unwrap() error {
	return e.err
}

// IsTransport reports whether err is an APIError for a request that was sent but
// never got a response.
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 0 && !apiErr.local
}

// IsLocal reports whether err is an APIError raised on this device before any
// request was sent: an unreadable session store or an unencodable body.
func IsLocal(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.local
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the HTTP status carried by err, or -1 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return -1
}

func newTransportError(host string, cause error) *APIError {
	return &APIError{
		Message:    fmt.Sprintf("could not reach server at %s, check the API host and port configuration", host),
		StatusCode: 0,
		err:        cause,
	}
}

func newLocalError(op string, cause error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("%s: %v", op, cause),
		err:     cause,
		local:   true,
	}
}

// newResponseError builds an APIError from a failed response, taking the message
// from the payload's "message" or "detail" fields when present.
func newResponseError(status int, payload any) *APIError {
	return &APIError{
		Message:    messageFromPayload(payload),
		StatusCode: status,
		Payload:    payload,
	}
}

func messageFromPayload(payload any) string {
	body, ok := payload.(map[string]any)
	if !ok {
		return genericServerMessage
	}
	for _, key := range []string{"message", "detail"} {
		if msg, ok := body[key].(string); ok && msg != "" {
			return msg
		}
	}
	return genericServerMessage
}
