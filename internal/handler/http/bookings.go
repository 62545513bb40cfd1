package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/internal/utils"
	"github.com/avialine/flight-booking/models"
)

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.services.BookingService.GetAll(r.Context())
	if err != nil {
		respondError(w, r, err, msgBookingNotFound)
		return
	}

	utils.WriteJSON(w, bookings, http.StatusOK)
}

func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidBookingID, http.StatusBadRequest)
		return
	}

	booking, err := h.services.BookingService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, msgBookingNotFound)
		return
	}

	utils.WriteJSON(w, booking, http.StatusOK)
}

// createBooking links a user to a ticket. The body may reference both as bare
// ids or as nested objects; booking the same ticket twice answers 409.
func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.BookingService.Create(r.Context(), booking)
	if err != nil {
		if errors.Is(err, store.ErrTicketAlreadyBooked) {
			log.Warn().Err(err).Msg("ticket is already booked")
			utils.WriteJSONError(w, "ticket is already booked", http.StatusConflict)
			return
		}
		respondError(w, r, err, msgBookingNotFound)
		return
	}

	if subject, ok := utils.GetSubjectFromContext(r.Context()); ok {
		log.Debug().Str("subject", subject).Int64("id", created.ID).Msg("booking created")
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateBooking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidBookingID, http.StatusBadRequest)
		return
	}

	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}
	booking.ID = id

	updated, err := h.services.BookingService.Update(r.Context(), booking)
	if err != nil {
		respondError(w, r, err, msgBookingNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) patchBooking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidBookingID, http.StatusBadRequest)
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.BookingService.UpdatePartial(r.Context(), id, updates)
	if err != nil {
		respondError(w, r, err, msgBookingNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidBookingID, http.StatusBadRequest)
		return
	}

	if err := h.services.BookingService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, msgBookingNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
