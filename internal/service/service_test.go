package service

import (
	"context"

	"github.com/avialine/flight-booking/models"
)

// Func-field fakes for the repository interfaces. Tests set only the methods
// they need; everything else answers zero values.

type mockUserRepository struct {
	createFn        func(ctx context.Context, user models.User) (models.User, error)
	findByIDFn      func(ctx context.Context, id int64) (models.User, error)
	findByEmailFn   func(ctx context.Context, email string) (models.User, error)
	findAllFn       func(ctx context.Context) ([]models.User, error)
	updateFn        func(ctx context.Context, user models.User) (models.User, error)
	updatePartialFn func(ctx context.Context, id int64, updates map[string]any) (models.User, error)
	deleteFn        func(ctx context.Context, id int64) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.User, error) {
	if m.updatePartialFn != nil {
		return m.updatePartialFn(ctx, id, updates)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

type mockFlightRepository struct {
	createFn        func(ctx context.Context, flight models.Flight) (models.Flight, error)
	findByIDFn      func(ctx context.Context, id int64) (models.Flight, error)
	findAllFn       func(ctx context.Context) ([]models.Flight, error)
	updateFn        func(ctx context.Context, flight models.Flight) (models.Flight, error)
	updatePartialFn func(ctx context.Context, id int64, updates map[string]any) (models.Flight, error)
	deleteFn        func(ctx context.Context, id int64) (bool, error)
}

func (m *mockFlightRepository) Create(ctx context.Context, flight models.Flight) (models.Flight, error) {
	if m.createFn != nil {
		return m.createFn(ctx, flight)
	}
	return models.Flight{}, nil
}

func (m *mockFlightRepository) FindByID(ctx context.Context, id int64) (models.Flight, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.Flight{}, nil
}

func (m *mockFlightRepository) FindAll(ctx context.Context) ([]models.Flight, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockFlightRepository) Update(ctx context.Context, flight models.Flight) (models.Flight, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, flight)
	}
	return models.Flight{}, nil
}

func (m *mockFlightRepository) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Flight, error) {
	if m.updatePartialFn != nil {
		return m.updatePartialFn(ctx, id, updates)
	}
	return models.Flight{}, nil
}

func (m *mockFlightRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

type mockTicketRepository struct {
	createFn      func(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	createBatchFn func(ctx context.Context, flightID int64, seats int) ([]models.Ticket, error)
	findByIDFn    func(ctx context.Context, id int64) (models.Ticket, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ticket)
	}
	return models.Ticket{}, nil
}

func (m *mockTicketRepository) CreateBatch(ctx context.Context, flightID int64, seats int) ([]models.Ticket, error) {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, flightID, seats)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindByID(ctx context.Context, id int64) (models.Ticket, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.Ticket{}, nil
}

func (m *mockTicketRepository) FindAll(context.Context) ([]models.Ticket, error) { return nil, nil }

func (m *mockTicketRepository) FindByFlight(context.Context, int64) ([]models.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	return ticket, nil
}

func (m *mockTicketRepository) UpdatePartial(context.Context, int64, map[string]any) (models.Ticket, error) {
	return models.Ticket{}, nil
}

func (m *mockTicketRepository) Delete(context.Context, int64) (bool, error) { return false, nil }

type mockBookingRepository struct {
	createFn func(ctx context.Context, booking models.Booking) (models.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking models.Booking) (models.Booking, error) {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	return models.Booking{}, nil
}

func (m *mockBookingRepository) FindByID(context.Context, int64) (models.Booking, error) {
	return models.Booking{}, nil
}

func (m *mockBookingRepository) FindAll(context.Context) ([]models.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, booking models.Booking) (models.Booking, error) {
	return booking, nil
}

func (m *mockBookingRepository) UpdatePartial(context.Context, int64, map[string]any) (models.Booking, error) {
	return models.Booking{}, nil
}

func (m *mockBookingRepository) Delete(context.Context, int64) (bool, error) { return false, nil }

// mockFlightCache is a func-field fake for cache.FlightCache.
type mockFlightCache struct {
	getFn        func(ctx context.Context) ([]models.Flight, error)
	setFn        func(ctx context.Context, flights []models.Flight) error
	invalidateFn func(ctx context.Context) error
}

func (m *mockFlightCache) GetFlights(ctx context.Context) ([]models.Flight, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return nil, nil
}

func (m *mockFlightCache) SetFlights(ctx context.Context, flights []models.Flight) error {
	if m.setFn != nil {
		return m.setFn(ctx, flights)
	}
	return nil
}

func (m *mockFlightCache) InvalidateFlights(ctx context.Context) error {
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx)
	}
	return nil
}
