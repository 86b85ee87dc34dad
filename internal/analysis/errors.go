package analysis

import (
	"errors"
	"net/http"
)

// Kind is a machine-readable failure category for the analysis gateway.
type Kind string

const (
	// KindConfiguration means a required secret or service is unavailable.
	// Fatal for the request, not for the process.
	KindConfiguration Kind = "configuration"

	// KindInvalidArgument means the image payload was missing or malformed.
	// No remote call is attempted.
	KindInvalidArgument Kind = "invalid_argument"

	// KindRemoteBlocked means the AI backend returned no usable content
	// (safety filter or empty candidate list).
	KindRemoteBlocked Kind = "remote_blocked"

	// KindFormat means the remote returned content that failed JSON-shape
	// validation. The raw text is attached for diagnostics and must never
	// be shown verbatim to end users.
	KindFormat Kind = "format"

	// KindTransport covers network failures, timeouts, and unexpected
	// errors. Generic and retryable from the caller's point of view.
	KindTransport Kind = "transport"
)

// HTTPStatus maps a failure kind to the status the callable endpoint uses.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindConfiguration:
		return http.StatusServiceUnavailable
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindRemoteBlocked, KindFormat:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single categorized error the gateway hands to its caller.
// The gateway recovers nothing locally; user-facing messaging is the
// caller's job.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	// Raw carries the unparseable model output for format failures.
	Raw string `json:"raw,omitempty"`
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// NewError builds a categorized error.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the failure kind from err, defaulting to transport for
// anything uncategorized.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindTransport
}
