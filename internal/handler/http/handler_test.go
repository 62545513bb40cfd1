package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/mock"
	"github.com/avialine/flight-booking/internal/service"
	"github.com/avialine/flight-booking/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

// testToken is accepted by the auth middleware in every test that calls
// allowAuth.
const testToken = "valid-token"

type serviceMocks struct {
	auth     *mock.MockAuthService
	users    *mock.MockUserService
	flights  *mock.MockFlightService
	tickets  *mock.MockTicketService
	bookings *mock.MockBookingService
}

func newTestRouter(t *testing.T) (*chi.Mux, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := serviceMocks{
		auth:     mock.NewMockAuthService(ctrl),
		users:    mock.NewMockUserService(ctrl),
		flights:  mock.NewMockFlightService(ctrl),
		tickets:  mock.NewMockTicketService(ctrl),
		bookings: mock.NewMockBookingService(ctrl),
	}

	handler := NewHandler(&service.Services{
		AuthService:    mocks.auth,
		UserService:    mocks.users,
		FlightService:  mocks.flights,
		TicketService:  mocks.tickets,
		BookingService: mocks.bookings,
	}, logger.Nop())

	return handler.Init(), mocks
}

// allowAuth makes the middleware accept testToken for the rest of the test.
func allowAuth(mocks serviceMocks) {
	mocks.auth.EXPECT().
		ParseToken(gomock.Any(), testToken).
		Return(models.Token{Subject: "a@x"}, nil).
		AnyTimes()
}

func doRequest(router *chi.Mux, method, target, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func testFlight() models.Flight {
	return models.Flight{
		ID:            1,
		FlightNumber:  100,
		Origin:        "A",
		Destination:   "B",
		Price:         199.99,
		DepartureTime: "2026-09-01T10:00:00",
		ArrivalTime:   "2026-09-01T12:00:00",
	}
}
