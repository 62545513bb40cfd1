package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/service"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/internal/utils"
)

// loginRequest is the POST /auth/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login authenticates an email/password pair and answers with a freshly
// issued bearer token as {"token": "<jwt>"}.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials loginRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		utils.WriteJSONError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, credentials.Email, credentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Warn().Err(err).Msg("invalid data provided")
			utils.WriteJSONError(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNotFound) || errors.Is(err, service.ErrWrongPassword):
			log.Warn().Err(err).Msg("no user was found/wrong password")
			utils.WriteJSONError(w, "invalid email/password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", foundUser.ID).Str("email", foundUser.Email).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, token, http.StatusOK)
}
