package service

import (
	"github.com/avialine/flight-booking/internal/cache"
	"github.com/avialine/flight-booking/internal/config"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	FlightService  FlightService
	TicketService  TicketService
	BookingService BookingService
}

func NewServices(storages *store.Storages, flightCache cache.FlightCache, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		UserService:    NewUserService(storages.UserRepository, cfg.App, logger),
		FlightService:  NewFlightService(storages.FlightRepository, flightCache, logger),
		TicketService:  NewTicketService(storages.TicketRepository, logger),
		BookingService: NewBookingService(storages.BookingRepository, logger),
	}
}
