package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avialine/flight-booking/internal/service"
	"github.com/avialine/flight-booking/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		parseErr   error
	}{
		{name: "no authorization header"},
		{name: "wrong scheme", authHeader: "Token abc"},
		{name: "lowercase bearer", authHeader: "bearer abc"},
		{name: "empty token after prefix", authHeader: "Bearer "},
		{name: "invalid token", authHeader: "Bearer garbage", parseErr: service.ErrTokenIsExpiredOrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mocks := newTestRouter(t)
			if tt.parseErr != nil {
				mocks.auth.EXPECT().
					ParseToken(gomock.Any(), "garbage").
					Return(models.Token{}, tt.parseErr)
			}

			request := httptest.NewRequest(http.MethodGet, "/flights", nil)
			if tt.authHeader != "" {
				request.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "Unauthorized", recorder.Body.String())
		})
	}
}

func TestAuthMiddleware_ValidTokenPassesThrough(t *testing.T) {
	router, mocks := newTestRouter(t)
	allowAuth(mocks)
	mocks.flights.EXPECT().GetAll(gomock.Any()).Return([]models.Flight{}, nil)

	recorder := doRequest(router, http.MethodGet, "/flights", "", testToken)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantToken  string
		wantErr    error
	}{
		{name: "valid", authHeader: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "missing prefix", authHeader: "abc.def.ghi", wantErr: ErrInvalidAuthorizationHeader},
		{name: "lowercase scheme", authHeader: "bearer abc", wantErr: ErrInvalidAuthorizationHeader},
		{name: "no space after scheme", authHeader: "Bearerabc", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", authHeader: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.authHeader)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthMiddleware_PublicRoutesSkipAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/ping", "", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

// Registration must stay reachable without a token while the other /users
// methods require one, otherwise nobody can ever obtain a first token.
func TestAuthMiddleware_RegistrationOpenOtherUserRoutesProtected(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.users.EXPECT().
		Create(gomock.Any(), models.User{Email: "a@x", Password: "pw"}).
		Return(models.User{ID: 1, Email: "a@x", Password: "$2a$10$hash", Role: models.RoleCustomer}, nil)

	recorder := doRequest(router, http.MethodPost, "/users", `{"email":"a@x","password":"pw"}`, "")
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Unauthorized", recorder.Body.String())

	recorder = doRequest(router, http.MethodGet, "/users/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
