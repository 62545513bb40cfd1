package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/service"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/internal/utils"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// idFromRequest extracts the {id} path parameter as an int64.
func idFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// respondError projects a service/store error onto the HTTP error contract:
// store.ErrNotFound becomes a 404 with the resource-specific message, every
// other error goes through the status map with its own message. The body is
// always a JSON object of the form {"error": "<message>"}.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	log := logger.FromRequest(r)

	if errors.Is(err, store.ErrNotFound) {
		log.Warn().Err(err).Msg(notFoundMessage)
		utils.WriteJSONError(w, notFoundMessage, http.StatusNotFound)
		return
	}

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Warn().Err(err).Msg("request rejected")
	}
	utils.WriteJSONError(w, err.Error(), status)
}
