package adapter

import (
	"context"

	"github.com/avialine/flight-booking/models"
)

// APIClient is the programmatic client for the booking REST API. It is used
// by operator tooling and end-to-end tests; the server never depends on it.
//
// Register and Login store the returned bearer token on the client, so every
// subsequent call is authenticated automatically.
type APIClient interface {
	SetToken(token string)
	Token() string

	Register(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, email, password string) (models.Token, error)

	GetFlights(ctx context.Context) ([]models.Flight, error)
	GetFlight(ctx context.Context, id int64) (models.Flight, error)
	CreateFlight(ctx context.Context, flight models.Flight) (models.Flight, error)
	UpdateFlight(ctx context.Context, flight models.Flight) (models.Flight, error)
	PatchFlight(ctx context.Context, id int64, updates map[string]any) (models.Flight, error)
	DeleteFlight(ctx context.Context, id int64) error

	GetFlightTickets(ctx context.Context, flightID int64) ([]models.Ticket, error)
	CreateFlightTickets(ctx context.Context, flightID int64, seats int) ([]models.Ticket, error)

	GetTicket(ctx context.Context, id int64) (models.Ticket, error)
	PatchTicket(ctx context.Context, id int64, updates map[string]any) (models.Ticket, error)

	GetBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id int64) (models.Booking, error)
	CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}
