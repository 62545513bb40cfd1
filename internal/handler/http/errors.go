package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but does not start with the literal "Bearer " scheme
	// prefix.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Messages used in JSON error bodies. They are part of the public API
// contract and must not drift between handlers and tests.
const (
	msgInvalidJSON = "Invalid JSON was passed"

	msgInvalidUserID    = "Invalid user ID"
	msgInvalidFlightID  = "Invalid flight ID"
	msgInvalidTicketID  = "Invalid ticket ID"
	msgInvalidBookingID = "Invalid booking ID"

	msgUserNotFound    = "User not found"
	msgFlightNotFound  = "Flight not found"
	msgTicketNotFound  = "Ticket not found"
	msgBookingNotFound = "Booking not found"
)
