package http

import (
	"encoding/json"
	"net/http"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/utils"
	"github.com/avialine/flight-booking/models"
)

func (h *Handler) listTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.services.TicketService.GetAll(r.Context())
	if err != nil {
		respondError(w, r, err, msgTicketNotFound)
		return
	}

	utils.WriteJSON(w, tickets, http.StatusOK)
}

func (h *Handler) getTicket(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidTicketID, http.StatusBadRequest)
		return
	}

	ticket, err := h.services.TicketService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, msgTicketNotFound)
		return
	}

	utils.WriteJSON(w, ticket, http.StatusOK)
}

func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var ticket models.Ticket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.TicketService.Create(r.Context(), ticket)
	if err != nil {
		respondError(w, r, err, msgTicketNotFound)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateTicket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidTicketID, http.StatusBadRequest)
		return
	}

	var ticket models.Ticket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}
	ticket.ID = id

	updated, err := h.services.TicketService.Update(r.Context(), ticket)
	if err != nil {
		respondError(w, r, err, msgTicketNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) patchTicket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidTicketID, http.StatusBadRequest)
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.TicketService.UpdatePartial(r.Context(), id, updates)
	if err != nil {
		respondError(w, r, err, msgTicketNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidTicketID, http.StatusBadRequest)
		return
	}

	if err := h.services.TicketService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, msgTicketNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
