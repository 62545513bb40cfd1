package service

import (
	"context"

	"github.com/avialine/flight-booking/models"
)

// UserService manages user accounts. Passwords cross this boundary in plain
// text and leave it hashed; no caller below this layer ever sees a plain-text
// password.
type UserService interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
	UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

// FlightService manages the flight catalogue. List reads go through the
// flight cache; every mutation invalidates it.
type FlightService interface {
	Create(ctx context.Context, flight models.Flight) (models.Flight, error)
	GetByID(ctx context.Context, id int64) (models.Flight, error)
	GetAll(ctx context.Context) ([]models.Flight, error)
	Update(ctx context.Context, flight models.Flight) (models.Flight, error)
	UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Flight, error)
	Delete(ctx context.Context, id int64) error
}

// TicketService manages tickets and seat inventory.
type TicketService interface {
	Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	// CreateTickets provisions seats 1..seats for a flight atomically:
	// either every ticket is created or none is.
	CreateTickets(ctx context.Context, flightID int64, seats int) ([]models.Ticket, error)
	GetByID(ctx context.Context, id int64) (models.Ticket, error)
	GetAll(ctx context.Context) ([]models.Ticket, error)
	GetByFlight(ctx context.Context, flightID int64) ([]models.Ticket, error)
	Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Ticket, error)
	Delete(ctx context.Context, id int64) error
}

// BookingService manages bookings linking users to tickets.
type BookingService interface {
	Create(ctx context.Context, booking models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, id int64) (models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	Update(ctx context.Context, booking models.Booking) (models.Booking, error)
	UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// AuthService handles credential verification and the JWT token lifecycle.
type AuthService interface {
	// Login verifies the email/password pair against the stored bcrypt hash
	// and returns the matching account.
	Login(ctx context.Context, email, password string) (models.User, error)
	// CreateToken issues a signed JWT whose subject is the user's email.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	// ParseToken validates a raw JWT string and returns the decoded token.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// IsValid reports whether the raw JWT string is valid, unexpired, and
	// bound to the given subject.
	IsValid(ctx context.Context, tokenString, subject string) bool
}
