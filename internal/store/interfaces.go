package store

import (
	"context"

	"github.com/avialine/flight-booking/models"
)

// UserRepository is the persistence gateway for user records.
//
// All mutating operations run inside a fresh transaction that commits on
// success and rolls back (propagating the failure) otherwise. Read-only
// operations do not open explicit transactions.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
	UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// FlightRepository is the persistence gateway for flight records.
type FlightRepository interface {
	Create(ctx context.Context, flight models.Flight) (models.Flight, error)
	FindByID(ctx context.Context, id int64) (models.Flight, error)
	FindAll(ctx context.Context) ([]models.Flight, error)
	Update(ctx context.Context, flight models.Flight) (models.Flight, error)
	UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Flight, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TicketRepository is the persistence gateway for ticket records. Reads
// return tickets with the owning flight embedded.
type TicketRepository interface {
	Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	// CreateBatch inserts seats 1..seats for the given flight inside a
	// single transaction; any failure aborts the whole batch.
	CreateBatch(ctx context.Context, flightID int64, seats int) ([]models.Ticket, error)
	FindByID(ctx context.Context, id int64) (models.Ticket, error)
	FindAll(ctx context.Context) ([]models.Ticket, error)
	FindByFlight(ctx context.Context, flightID int64) ([]models.Ticket, error)
	Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Ticket, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// BookingRepository is the persistence gateway for booking records. Reads
// return bookings with the user and the ticket (including its flight)
// embedded.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (models.Booking, error)
	FindByID(ctx context.Context, id int64) (models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	Update(ctx context.Context, booking models.Booking) (models.Booking, error)
	UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Booking, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
