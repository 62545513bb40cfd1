package service

import (
	"context"
	"fmt"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/models"
)

// ticketService is the concrete implementation of TicketService.
type ticketService struct {
	ticketRepository store.TicketRepository
	logger           *logger.Logger
}

// NewTicketService constructs a TicketService wired to the given repository.
func NewTicketService(ticketRepository store.TicketRepository, logger *logger.Logger) TicketService {
	return &ticketService{
		ticketRepository: ticketRepository,
		logger:           logger,
	}
}

// Create persists a single ticket. A zero FlightID is rejected before the
// repository is consulted.
func (s *ticketService) Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	if ticket.FlightID == 0 {
		log.Error().Msg("ticket has no flight reference")
		return models.Ticket{}, ErrInvalidDataProvided
	}

	created, err := s.ticketRepository.Create(ctx, ticket)
	if err != nil {
		log.Err(err).Int64("flightID", ticket.FlightID).Msg("ticket creation ended with error")
		return models.Ticket{}, fmt.Errorf("ticket creation ended with error: %w", err)
	}

	return created, nil
}

// CreateTickets provisions seats 1..seats for the given flight. The batch is
// atomic: the repository inserts every ticket in one transaction, so a
// failure leaves no partial inventory behind.
//
// Returns ErrInvalidDataProvided when seats is not positive.
func (s *ticketService) CreateTickets(ctx context.Context, flightID int64, seats int) ([]models.Ticket, error) {
	log := logger.FromContext(ctx)

	if seats <= 0 {
		log.Error().Int64("flightID", flightID).Int("seats", seats).Msg("invalid seat count")
		return nil, ErrInvalidDataProvided
	}

	tickets, err := s.ticketRepository.CreateBatch(ctx, flightID, seats)
	if err != nil {
		log.Err(err).Int64("flightID", flightID).Int("seats", seats).Msg("ticket batch creation ended with error")
		return nil, fmt.Errorf("ticket batch creation ended with error: %w", err)
	}

	return tickets, nil
}

func (s *ticketService) GetByID(ctx context.Context, id int64) (models.Ticket, error) {
	return s.ticketRepository.FindByID(ctx, id)
}

func (s *ticketService) GetAll(ctx context.Context) ([]models.Ticket, error) {
	return s.ticketRepository.FindAll(ctx)
}

func (s *ticketService) GetByFlight(ctx context.Context, flightID int64) ([]models.Ticket, error) {
	return s.ticketRepository.FindByFlight(ctx, flightID)
}

func (s *ticketService) Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	updated, err := s.ticketRepository.Update(ctx, ticket)
	if err != nil {
		log.Err(err).Int64("id", ticket.ID).Msg("ticket update ended with error")
		return models.Ticket{}, fmt.Errorf("ticket update ended with error: %w", err)
	}

	return updated, nil
}

func (s *ticketService) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	updated, err := s.ticketRepository.UpdatePartial(ctx, id, updates)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("partial ticket update ended with error")
		return models.Ticket{}, fmt.Errorf("partial ticket update ended with error: %w", err)
	}

	return updated, nil
}

// Delete removes a ticket. Deleting an absent ticket is not an error; the
// miss is logged and the call succeeds.
func (s *ticketService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	deleted, err := s.ticketRepository.Delete(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("ticket deletion ended with error")
		return fmt.Errorf("ticket deletion ended with error: %w", err)
	}
	if !deleted {
		log.Info().Int64("id", id).Msg("delete of non-existent ticket")
	}

	return nil
}
