package http

import (
	"encoding/json"
	"net/http"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/utils"
	"github.com/avialine/flight-booking/models"
)

func (h *Handler) listFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.services.FlightService.GetAll(r.Context())
	if err != nil {
		respondError(w, r, err, msgFlightNotFound)
		return
	}

	utils.WriteJSON(w, flights, http.StatusOK)
}

func (h *Handler) getFlight(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidFlightID, http.StatusBadRequest)
		return
	}

	flight, err := h.services.FlightService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, msgFlightNotFound)
		return
	}

	utils.WriteJSON(w, flight, http.StatusOK)
}

func (h *Handler) createFlight(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var flight models.Flight
	if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.FlightService.Create(r.Context(), flight)
	if err != nil {
		respondError(w, r, err, msgFlightNotFound)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateFlight(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidFlightID, http.StatusBadRequest)
		return
	}

	var flight models.Flight
	if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}
	flight.ID = id

	updated, err := h.services.FlightService.Update(r.Context(), flight)
	if err != nil {
		respondError(w, r, err, msgFlightNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) patchFlight(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidFlightID, http.StatusBadRequest)
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.FlightService.UpdatePartial(r.Context(), id, updates)
	if err != nil {
		respondError(w, r, err, msgFlightNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteFlight(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidFlightID, http.StatusBadRequest)
		return
	}

	if err := h.services.FlightService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, msgFlightNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listFlightTickets serves GET /flights/{id}/tickets: the seat inventory of a
// single flight ordered by seat number.
func (h *Handler) listFlightTickets(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidFlightID, http.StatusBadRequest)
		return
	}

	tickets, err := h.services.TicketService.GetByFlight(r.Context(), id)
	if err != nil {
		respondError(w, r, err, msgFlightNotFound)
		return
	}

	utils.WriteJSON(w, tickets, http.StatusOK)
}

// createTicketsRequest is the POST /flights/{id}/tickets body.
type createTicketsRequest struct {
	Seats int `json:"seats"`
}

// createFlightTickets serves POST /flights/{id}/tickets: it provisions seats
// 1..seats for the flight in one atomic batch and answers with the created
// tickets.
func (h *Handler) createFlightTickets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidFlightID, http.StatusBadRequest)
		return
	}

	var request createTicketsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	tickets, err := h.services.TicketService.CreateTickets(r.Context(), id, request.Seats)
	if err != nil {
		respondError(w, r, err, msgFlightNotFound)
		return
	}

	utils.WriteJSON(w, tickets, http.StatusCreated)
}
