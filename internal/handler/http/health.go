package http

import (
	"net/http"

	"github.com/avialine/flight-booking/internal/utils"
)

// ping is the liveness probe. It answers 200 as soon as the router is up and
// does not touch the database.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
