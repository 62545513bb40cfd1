package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avialine/flight-booking/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) APIClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPAPIClient(HTTPClientConfig{BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "http://localhost:8080", want: "http://localhost:8080"},
		{name: "scheme added", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash trimmed", raw: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "whitespace trimmed", raw: "  http://localhost:8080  ", want: "http://localhost:8080"},
		{name: "empty", raw: "", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPAPIClient_RegisterLogsIn(t *testing.T) {
	// the stubs never set Content-Type; the client must decode the bodies
	// regardless
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		assert.Equal(t, "pw", user.Password)

		user.ID = 1
		user.Password = "$2a$10$hash"
		user.Role = models.RoleCustomer
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(user))
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var credentials map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&credentials))
		assert.Equal(t, "a@x", credentials["email"])
		assert.Equal(t, "pw", credentials["password"])

		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"token": "signed.jwt.token"}))
	})

	client := newTestClient(t, mux)

	created, err := client.Register(context.Background(), models.User{Email: "a@x", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "$2a$10$hash", created.Password)
	assert.Equal(t, "signed.jwt.token", client.Token())
}

func TestHTTPAPIClient_AuthorizedRequestsCarryToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /flights", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer signed.jwt.token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewEncoder(w).Encode([]models.Flight{{ID: 1, FlightNumber: 100}}))
	})

	client := newTestClient(t, mux)
	client.SetToken("signed.jwt.token")

	flights, err := client.GetFlights(context.Background())
	require.NoError(t, err)

	require.Len(t, flights, 1)
	assert.Equal(t, 100, flights[0].FlightNumber)
}

func TestHTTPAPIClient_MapsErrorStatuses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /flights/404", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Flight not found"}`))
	})
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"ticket is already booked"}`))
	})
	mux.HandleFunc("GET /bookings", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Unauthorized"))
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	_, err := client.GetFlight(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Flight not found")

	_, err = client.CreateBooking(ctx, models.Booking{UserID: 7, TicketID: 10})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = client.GetBookings(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPAPIClient_DeleteHasNoBodyToDecode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /bookings/100", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, mux)

	assert.NoError(t, client.DeleteBooking(context.Background(), 100))
}
