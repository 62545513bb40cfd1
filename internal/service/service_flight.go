package service

import (
	"context"
	"fmt"

	"github.com/avialine/flight-booking/internal/cache"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/models"
)

// flightService is the concrete implementation of FlightService. GetAll is a
// read-through against the flight cache; every mutation invalidates it. Cache
// failures are logged and never fail the request.
type flightService struct {
	flightRepository store.FlightRepository
	cache            cache.FlightCache
	logger           *logger.Logger
}

// NewFlightService constructs a FlightService wired to the given repository
// and flight cache.
func NewFlightService(flightRepository store.FlightRepository, cache cache.FlightCache, logger *logger.Logger) FlightService {
	return &flightService{
		flightRepository: flightRepository,
		cache:            cache,
		logger:           logger,
	}
}

func (s *flightService) Create(ctx context.Context, flight models.Flight) (models.Flight, error) {
	log := logger.FromContext(ctx)

	if flight.Price < 0 {
		log.Error().Float64("price", flight.Price).Msg("negative flight price")
		return models.Flight{}, ErrInvalidDataProvided
	}

	created, err := s.flightRepository.Create(ctx, flight)
	if err != nil {
		log.Err(err).Msg("flight creation ended with error")
		return models.Flight{}, fmt.Errorf("flight creation ended with error: %w", err)
	}

	s.invalidateCache(ctx)
	return created, nil
}

func (s *flightService) GetByID(ctx context.Context, id int64) (models.Flight, error) {
	return s.flightRepository.FindByID(ctx, id)
}

// GetAll returns the full flight list, serving from cache when a fresh entry
// exists and repopulating it from the database otherwise.
func (s *flightService) GetAll(ctx context.Context) ([]models.Flight, error) {
	log := logger.FromContext(ctx)

	cached, err := s.cache.GetFlights(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("flight cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	flights, err := s.flightRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetFlights(ctx, flights); err != nil {
		log.Warn().Err(err).Msg("flight cache write failed")
	}

	return flights, nil
}

func (s *flightService) Update(ctx context.Context, flight models.Flight) (models.Flight, error) {
	log := logger.FromContext(ctx)

	if flight.Price < 0 {
		log.Error().Float64("price", flight.Price).Msg("negative flight price")
		return models.Flight{}, ErrInvalidDataProvided
	}

	updated, err := s.flightRepository.Update(ctx, flight)
	if err != nil {
		log.Err(err).Int64("id", flight.ID).Msg("flight update ended with error")
		return models.Flight{}, fmt.Errorf("flight update ended with error: %w", err)
	}

	s.invalidateCache(ctx)
	return updated, nil
}

func (s *flightService) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Flight, error) {
	log := logger.FromContext(ctx)

	updated, err := s.flightRepository.UpdatePartial(ctx, id, updates)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("partial flight update ended with error")
		return models.Flight{}, fmt.Errorf("partial flight update ended with error: %w", err)
	}

	s.invalidateCache(ctx)
	return updated, nil
}

// Delete removes a flight. Deleting an absent flight is not an error; the
// miss is logged and the call succeeds.
func (s *flightService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	deleted, err := s.flightRepository.Delete(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("flight deletion ended with error")
		return fmt.Errorf("flight deletion ended with error: %w", err)
	}
	if !deleted {
		log.Info().Int64("id", id).Msg("delete of non-existent flight")
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *flightService) invalidateCache(ctx context.Context) {
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("flight cache invalidation failed")
	}
}
