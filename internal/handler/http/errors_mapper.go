package http

import (
	"errors"
	"net/http"

	"github.com/avialine/flight-booking/internal/service"
	"github.com/avialine/flight-booking/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrPasswordHashingFailed:   http.StatusInternalServerError,

	store.ErrNotFound:             http.StatusNotFound,
	store.ErrEmailAlreadyExists:   http.StatusConflict,
	store.ErrTicketAlreadyBooked:  http.StatusConflict,
	store.ErrReferencedRowMissing: http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
