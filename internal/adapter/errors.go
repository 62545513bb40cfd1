package adapter

import "errors"

// Sentinel errors mapped from non-2xx API responses. Callers can match
// against them with [errors.Is]; the wrapped message carries the server's
// error body.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
)
