package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/service"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/internal/utils"
	"github.com/avialine/flight-booking/models"
)

// createUser registers a new account. The response carries the persisted
// record, whose password field is the bcrypt hash, never the input value.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.UserService.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Warn().Err(err).Msg("invalid data provided")
			utils.WriteJSONError(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Warn().Err(err).Msg("email already exists")
			utils.WriteJSONError(w, "email already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user creation")
			utils.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.GetAll(r.Context())
	if err != nil {
		respondError(w, r, err, msgUserNotFound)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidUserID, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, msgUserNotFound)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateUser full-replaces the user record with the given id. The password in
// the body is treated as plain text and re-hashed.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidUserID, http.StatusBadRequest)
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}
	user.ID = id

	updated, err := h.services.UserService.Update(r.Context(), user)
	if err != nil {
		respondError(w, r, err, msgUserNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) patchUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidUserID, http.StatusBadRequest)
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserService.UpdatePartial(r.Context(), id, updates)
	if err != nil {
		respondError(w, r, err, msgUserNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, msgInvalidUserID, http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, msgUserNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
