package store

import "github.com/avialine/flight-booking/internal/logger"

// Storages bundles one repository per entity kind, all backed by the same
// persistence factory.
type Storages struct {
	UserRepository    UserRepository
	FlightRepository  FlightRepository
	TicketRepository  TicketRepository
	BookingRepository BookingRepository
}

// NewStorages constructs every repository on top of the shared DB factory.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		FlightRepository:  NewFlightRepository(db, log),
		TicketRepository:  NewTicketRepository(db, log),
		BookingRepository: NewBookingRepository(db, log),
	}
}
