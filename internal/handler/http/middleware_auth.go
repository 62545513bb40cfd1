package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/utils"
)

// bearerPrefix is the required Authorization scheme prefix, including the
// trailing space. Matching is exact and case-sensitive.
const bearerPrefix = "Bearer "

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via the auth service, and on success stores the authenticated
// subject (the account email) in the request context under
// [utils.SubjectCtxKey] before delegating to the next handler.
//
// Every rejection answers 401 with the plain-text body "Unauthorized":
//   - The "Authorization" header is absent.
//   - The header does not start with the literal "Bearer " prefix.
//   - The token is empty, malformed, expired, or carries a bad signature.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			writeUnauthorized(w)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			writeUnauthorized(w)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("error occurred during parsing token")
			writeUnauthorized(w)
			return
		}

		// Store the authenticated subject in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.SubjectCtxKey, token.GetEmail())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeUnauthorized writes the auth rejection response. The body is the bare
// word "Unauthorized" with no trailing newline, which is why this does not go
// through http.Error.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte("Unauthorized"))
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header must follow the standard format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header does not start with
//     the exact "Bearer " prefix.
//   - [ErrEmptyToken] — if the prefix is present but nothing follows it.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := authHeader[len(bearerPrefix):]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
