package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/models"
	"github.com/jackc/pgerrcode"
)

// ticketJoinColumns lists the projection used by every ticket read: the
// ticket's own columns followed by the owning flight's columns.
var ticketJoinColumns = []string{
	"t.id", "t.flight_id", "t.seat_number", "t.status",
	"f.id", "f.flight_number", "f.origin", "f.destination", "f.price", "f.departure_time", "f.arrival_time",
}

var ticketFieldSetters = map[string]func(t *models.Ticket, v any) error{
	"flight": func(t *models.Ticket, v any) error {
		id, err := referenceValue(v)
		if err == nil {
			t.FlightID = id
		}
		return err
	},
	"seatNumber": func(t *models.Ticket, v any) error {
		n, err := intValue(v)
		if err == nil {
			t.SeatNumber = n
		}
		return err
	},
	"status": func(t *models.Ticket, v any) error {
		s, err := stringValue(v)
		if err != nil {
			return err
		}
		status := models.TicketStatus(s)
		if !status.Valid() {
			return fmt.Errorf("unknown ticket status %q", s)
		}
		t.Status = status
		return nil
	},
}

// ticketRepository is the PostgreSQL-backed implementation of
// [TicketRepository]. Every read joins the flights table so callers always
// receive the ticket with its owning flight embedded.
type ticketRepository struct {
	db     *DB
	sb     sq.StatementBuilderType
	logger *logger.Logger
}

// NewTicketRepository constructs a [TicketRepository] backed by the provided
// database connection and logger.
func NewTicketRepository(db *DB, logger *logger.Logger) TicketRepository {
	logger.Debug().Msg("creating ticket repository")
	return &ticketRepository{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger,
	}
}

// Create persists a new ticket inside a fresh transaction. An empty status
// defaults to FREE. The inserted row is re-read with its flight joined so the
// returned ticket carries the nested flight.
//
// A foreign-key violation on flight_id maps to [ErrReferencedRowMissing].
func (r *ticketRepository) Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	if ticket.Status == "" {
		ticket.Status = models.TicketFree
	}

	query, args, err := r.sb.Insert(ticket.TableName()).
		Columns("flight_id", "seat_number", "status").
		Values(ticket.FlightID, ticket.SeatNumber, string(ticket.Status)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", "*ticketRepository.Create").Msg("error creating ticket")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Ticket{}, ErrReferencedRowMissing
		default:
			return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	created, err := r.findByIDTx(ctx, tx, id)
	if err != nil {
		return models.Ticket{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// CreateBatch inserts seats 1..seats for the given flight inside a single
// transaction, all with status FREE. Any failure rolls the whole batch back.
//
// Returns [ErrNotFound] when the flight does not exist.
func (r *ticketRepository) CreateBatch(ctx context.Context, flightID int64, seats int) ([]models.Ticket, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	flightQuery, flightArgs, err := r.sb.Select(flightColumns...).
		From(models.Flight{}.TableName()).
		Where(sq.Eq{"id": flightID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	flight, err := scanFlight(tx.QueryRowContext(ctx, flightQuery, flightArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Err(err).Str("func", "*ticketRepository.CreateBatch").Int64("flightID", flightID).Msg("error loading flight")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	insert := r.sb.Insert(models.Ticket{}.TableName()).
		Columns("flight_id", "seat_number", "status")
	for seat := 1; seat <= seats; seat++ {
		insert = insert.Values(flightID, seat, string(models.TicketFree))
	}

	insertQuery, insertArgs, err := insert.
		Suffix("RETURNING id, seat_number, status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, insertQuery, insertArgs...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.CreateBatch").Int64("flightID", flightID).Msg("error inserting tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	defer rows.Close()

	tickets := make([]models.Ticket, 0, seats)
	for rows.Next() {
		ticket := models.Ticket{FlightID: flightID, Flight: &flight}
		var status string
		if scanErr := rows.Scan(&ticket.ID, &ticket.SeatNumber, &status); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		ticket.Status = models.TicketStatus(status)
		tickets = append(tickets, ticket)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return tickets, nil
}

// FindByID retrieves a ticket by primary key with its flight embedded.
// Returns [ErrNotFound] when no row matches.
func (r *ticketRepository) FindByID(ctx context.Context, id int64) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.ticketSelect().
		Where(sq.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ticket, err := scanTicketJoined(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, ErrNotFound
		}
		log.Err(err).Str("func", "*ticketRepository.FindByID").Int64("id", id).Msg("error finding ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ticket, nil
}

// FindAll retrieves every ticket with its flight embedded, ordered by ticket
// id ascending.
func (r *ticketRepository) FindAll(ctx context.Context) ([]models.Ticket, error) {
	query, args, err := r.ticketSelect().
		OrderBy("t.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryTickets(ctx, query, args)
}

// FindByFlight retrieves every ticket belonging to the given flight, ordered
// by seat number ascending.
func (r *ticketRepository) FindByFlight(ctx context.Context, flightID int64) ([]models.Ticket, error) {
	query, args, err := r.ticketSelect().
		Where(sq.Eq{"t.flight_id": flightID}).
		OrderBy("t.seat_number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryTickets(ctx, query, args)
}

// Update full-replaces the mutable fields of the ticket with the given id and
// re-reads the row with its flight joined. Returns [ErrNotFound] when the
// target row does not exist.
func (r *ticketRepository) Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Update(ticket.TableName()).
		Set("flight_id", ticket.FlightID).
		Set("seat_number", ticket.SeatNumber).
		Set("status", string(ticket.Status)).
		Where(sq.Eq{"id": ticket.ID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, ErrNotFound
		}
		log.Err(err).Str("func", "*ticketRepository.Update").Int64("id", ticket.ID).Msg("error updating ticket")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Ticket{}, ErrReferencedRowMissing
		default:
			return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	updated, err := r.findByIDTx(ctx, tx, id)
	if err != nil {
		return models.Ticket{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// UpdatePartial loads the ticket with the given id inside a transaction,
// applies the update map through [ticketFieldSetters], and persists the
// merged record. Returns [ErrNotFound] when the target row does not exist.
func (r *ticketRepository) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	selectQuery, selectArgs, err := r.sb.Select("id", "flight_id", "seat_number", "status").
		From(models.Ticket{}.TableName()).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var ticket models.Ticket
	var status string
	err = tx.QueryRowContext(ctx, selectQuery, selectArgs...).
		Scan(&ticket.ID, &ticket.FlightID, &ticket.SeatNumber, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, ErrNotFound
		}
		log.Err(err).Str("func", "*ticketRepository.UpdatePartial").Int64("id", id).Msg("error loading ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	ticket.Status = models.TicketStatus(status)

	applyUpdates(log, &ticket, ticketFieldSetters, updates)

	updateQuery, updateArgs, err := r.sb.Update(ticket.TableName()).
		Set("flight_id", ticket.FlightID).
		Set("seat_number", ticket.SeatNumber).
		Set("status", string(ticket.Status)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		log.Err(err).Str("func", "*ticketRepository.UpdatePartial").Int64("id", id).Msg("error updating ticket")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Ticket{}, ErrReferencedRowMissing
		default:
			return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	updated, err := r.findByIDTx(ctx, tx, id)
	if err != nil {
		return models.Ticket{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// Delete removes the ticket with the given id. The returned bool reports
// whether a row was actually removed.
func (r *ticketRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Delete(models.Ticket{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Delete").Int64("id", id).Msg("error deleting ticket")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return affected > 0, nil
}

func (r *ticketRepository) ticketSelect() sq.SelectBuilder {
	return r.sb.Select(ticketJoinColumns...).
		From(models.Ticket{}.TableName() + " t").
		Join(models.Flight{}.TableName() + " f ON f.id = t.flight_id")
}

// findByIDTx re-reads a ticket with its flight joined inside an open
// transaction, so mutating methods can return the nested representation
// before committing.
func (r *ticketRepository) findByIDTx(ctx context.Context, tx *sql.Tx, id int64) (models.Ticket, error) {
	query, args, err := r.ticketSelect().
		Where(sq.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ticket, err := scanTicketJoined(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ticket, nil
}

func (r *ticketRepository) queryTickets(ctx context.Context, query string, args []any) ([]models.Ticket, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.queryTickets").Msg("error querying tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tickets := make([]models.Ticket, 0)
	for rows.Next() {
		ticket, scanErr := scanTicketJoined(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		tickets = append(tickets, ticket)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return tickets, nil
}

func scanTicketJoined(row rowScanner) (models.Ticket, error) {
	var ticket models.Ticket
	var flight models.Flight
	var status string

	err := row.Scan(
		&ticket.ID, &ticket.FlightID, &ticket.SeatNumber, &status,
		&flight.ID, &flight.FlightNumber, &flight.Origin, &flight.Destination,
		&flight.Price, &flight.DepartureTime, &flight.ArrivalTime,
	)
	if err != nil {
		return models.Ticket{}, err
	}

	ticket.Status = models.TicketStatus(status)
	ticket.Flight = &flight
	return ticket, nil
}
