package service

import (
	"context"
	"fmt"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/models"
)

// bookingService is the concrete implementation of BookingService.
type bookingService struct {
	bookingRepository store.BookingRepository
	logger            *logger.Logger
}

// NewBookingService constructs a BookingService wired to the given repository.
func NewBookingService(bookingRepository store.BookingRepository, logger *logger.Logger) BookingService {
	return &bookingService{
		bookingRepository: bookingRepository,
		logger:            logger,
	}
}

// Create links a user to a ticket. Zero references are rejected before the
// repository is consulted; double-booking a ticket surfaces as
// store.ErrTicketAlreadyBooked from the repository.
func (s *bookingService) Create(ctx context.Context, booking models.Booking) (models.Booking, error) {
	log := logger.FromContext(ctx)

	if booking.UserID == 0 || booking.TicketID == 0 {
		log.Error().Msg("booking has no user or ticket reference")
		return models.Booking{}, ErrInvalidDataProvided
	}

	created, err := s.bookingRepository.Create(ctx, booking)
	if err != nil {
		log.Err(err).Int64("userID", booking.UserID).Int64("ticketID", booking.TicketID).Msg("booking creation ended with error")
		return models.Booking{}, fmt.Errorf("booking creation ended with error: %w", err)
	}

	return created, nil
}

func (s *bookingService) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	return s.bookingRepository.FindByID(ctx, id)
}

func (s *bookingService) GetAll(ctx context.Context) ([]models.Booking, error) {
	return s.bookingRepository.FindAll(ctx)
}

func (s *bookingService) Update(ctx context.Context, booking models.Booking) (models.Booking, error) {
	log := logger.FromContext(ctx)

	updated, err := s.bookingRepository.Update(ctx, booking)
	if err != nil {
		log.Err(err).Int64("id", booking.ID).Msg("booking update ended with error")
		return models.Booking{}, fmt.Errorf("booking update ended with error: %w", err)
	}

	return updated, nil
}

func (s *bookingService) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Booking, error) {
	log := logger.FromContext(ctx)

	updated, err := s.bookingRepository.UpdatePartial(ctx, id, updates)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("partial booking update ended with error")
		return models.Booking{}, fmt.Errorf("partial booking update ended with error: %w", err)
	}

	return updated, nil
}

// Delete removes a booking. Deleting an absent booking is not an error; the
// miss is logged and the call succeeds.
func (s *bookingService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	deleted, err := s.bookingRepository.Delete(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("booking deletion ended with error")
		return fmt.Errorf("booking deletion ended with error: %w", err)
	}
	if !deleted {
		log.Info().Int64("id", id).Msg("delete of non-existent booking")
	}

	return nil
}
