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

// bookingJoinColumns lists the projection used by every booking read: the
// booking's own columns, the user's columns, then the ticket's columns with
// its flight.
var bookingJoinColumns = []string{
	"b.id", "b.user_id", "b.ticket_id",
	"u.id", "u.first_name", "u.last_name", "u.email", "u.password", "u.role",
	"t.id", "t.flight_id", "t.seat_number", "t.status",
	"f.id", "f.flight_number", "f.origin", "f.destination", "f.price", "f.departure_time", "f.arrival_time",
}

var bookingFieldSetters = map[string]func(b *models.Booking, v any) error{
	"user": func(b *models.Booking, v any) error {
		id, err := referenceValue(v)
		if err == nil {
			b.UserID = id
		}
		return err
	},
	"ticket": func(b *models.Booking, v any) error {
		id, err := referenceValue(v)
		if err == nil {
			b.TicketID = id
		}
		return err
	},
}

// bookingRepository is the PostgreSQL-backed implementation of
// [BookingRepository]. Every read joins users, tickets, and flights so
// callers always receive fully-nested bookings.
type bookingRepository struct {
	db     *DB
	sb     sq.StatementBuilderType
	logger *logger.Logger
}

// NewBookingRepository constructs a [BookingRepository] backed by the
// provided database connection and logger.
func NewBookingRepository(db *DB, logger *logger.Logger) BookingRepository {
	logger.Debug().Msg("creating booking repository")
	return &bookingRepository{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger,
	}
}

// Create persists a new booking inside a fresh transaction and re-reads it
// with user and ticket joined.
//
// Error handling:
//   - unique_violation on ticket_id → [ErrTicketAlreadyBooked].
//   - foreign_key_violation on user_id or ticket_id → [ErrReferencedRowMissing].
func (r *bookingRepository) Create(ctx context.Context, booking models.Booking) (models.Booking, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Insert(booking.TableName()).
		Columns("user_id", "ticket_id").
		Values(booking.UserID, booking.TicketID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", "*bookingRepository.Create").Msg("error creating booking")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Booking{}, ErrTicketAlreadyBooked
		case pgerrcode.ForeignKeyViolation:
			return models.Booking{}, ErrReferencedRowMissing
		default:
			return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	created, err := r.findByIDTx(ctx, tx, id)
	if err != nil {
		return models.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// FindByID retrieves a booking by primary key with user and ticket embedded.
// Returns [ErrNotFound] when no row matches.
func (r *bookingRepository) FindByID(ctx context.Context, id int64) (models.Booking, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.bookingSelect().
		Where(sq.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	booking, err := scanBookingJoined(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, ErrNotFound
		}
		log.Err(err).Str("func", "*bookingRepository.FindByID").Int64("id", id).Msg("error finding booking")
		return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return booking, nil
}

// FindAll retrieves every booking with user and ticket embedded, ordered by
// booking id ascending.
func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.bookingSelect().
		OrderBy("b.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookingRepository.FindAll").Msg("error querying bookings")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		booking, scanErr := scanBookingJoined(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		bookings = append(bookings, booking)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return bookings, nil
}

// Update full-replaces the user and ticket references of the booking with the
// given id. Returns [ErrNotFound] when the target row does not exist.
func (r *bookingRepository) Update(ctx context.Context, booking models.Booking) (models.Booking, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Update(booking.TableName()).
		Set("user_id", booking.UserID).
		Set("ticket_id", booking.TicketID).
		Where(sq.Eq{"id": booking.ID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, ErrNotFound
		}
		log.Err(err).Str("func", "*bookingRepository.Update").Int64("id", booking.ID).Msg("error updating booking")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Booking{}, ErrTicketAlreadyBooked
		case pgerrcode.ForeignKeyViolation:
			return models.Booking{}, ErrReferencedRowMissing
		default:
			return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	updated, err := r.findByIDTx(ctx, tx, id)
	if err != nil {
		return models.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// UpdatePartial loads the booking with the given id inside a transaction,
// applies the update map through [bookingFieldSetters], and persists the
// merged record. Returns [ErrNotFound] when the target row does not exist.
func (r *bookingRepository) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Booking, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	selectQuery, selectArgs, err := r.sb.Select("id", "user_id", "ticket_id").
		From(models.Booking{}.TableName()).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var booking models.Booking
	err = tx.QueryRowContext(ctx, selectQuery, selectArgs...).
		Scan(&booking.ID, &booking.UserID, &booking.TicketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, ErrNotFound
		}
		log.Err(err).Str("func", "*bookingRepository.UpdatePartial").Int64("id", id).Msg("error loading booking")
		return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	applyUpdates(log, &booking, bookingFieldSetters, updates)

	updateQuery, updateArgs, err := r.sb.Update(booking.TableName()).
		Set("user_id", booking.UserID).
		Set("ticket_id", booking.TicketID).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		log.Err(err).Str("func", "*bookingRepository.UpdatePartial").Int64("id", id).Msg("error updating booking")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Booking{}, ErrTicketAlreadyBooked
		case pgerrcode.ForeignKeyViolation:
			return models.Booking{}, ErrReferencedRowMissing
		default:
			return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	updated, err := r.findByIDTx(ctx, tx, id)
	if err != nil {
		return models.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// Delete removes the booking with the given id. The returned bool reports
// whether a row was actually removed.
func (r *bookingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Delete(models.Booking{}.TableName()).
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
		log.Err(err).Str("func", "*bookingRepository.Delete").Int64("id", id).Msg("error deleting booking")
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

func (r *bookingRepository) bookingSelect() sq.SelectBuilder {
	return r.sb.Select(bookingJoinColumns...).
		From(models.Booking{}.TableName() + " b").
		Join(models.User{}.TableName() + " u ON u.id = b.user_id").
		Join(models.Ticket{}.TableName() + " t ON t.id = b.ticket_id").
		Join(models.Flight{}.TableName() + " f ON f.id = t.flight_id")
}

// findByIDTx re-reads a booking with user and ticket joined inside an open
// transaction, so mutating methods can return the nested representation
// before committing.
func (r *bookingRepository) findByIDTx(ctx context.Context, tx *sql.Tx, id int64) (models.Booking, error) {
	query, args, err := r.bookingSelect().
		Where(sq.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	booking, err := scanBookingJoined(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return booking, nil
}

func scanBookingJoined(row rowScanner) (models.Booking, error) {
	var booking models.Booking
	var user models.User
	var ticket models.Ticket
	var flight models.Flight
	var role, status string

	err := row.Scan(
		&booking.ID, &booking.UserID, &booking.TicketID,
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password, &role,
		&ticket.ID, &ticket.FlightID, &ticket.SeatNumber, &status,
		&flight.ID, &flight.FlightNumber, &flight.Origin, &flight.Destination,
		&flight.Price, &flight.DepartureTime, &flight.ArrivalTime,
	)
	if err != nil {
		return models.Booking{}, err
	}

	user.Role = models.UserRole(role)
	ticket.Status = models.TicketStatus(status)
	ticket.Flight = &flight
	booking.User = &user
	booking.Ticket = &ticket
	return booking, nil
}
