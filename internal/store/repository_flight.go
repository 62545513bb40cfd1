package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/models"
)

var flightColumns = []string{"id", "flight_number", "origin", "destination", "price", "departure_time", "arrival_time"}

var flightFieldSetters = map[string]func(f *models.Flight, v any) error{
	"flightNumber": func(f *models.Flight, v any) error {
		n, err := intValue(v)
		if err == nil {
			f.FlightNumber = n
		}
		return err
	},
	"origin": func(f *models.Flight, v any) error {
		s, err := stringValue(v)
		if err == nil {
			f.Origin = s
		}
		return err
	},
	"destination": func(f *models.Flight, v any) error {
		s, err := stringValue(v)
		if err == nil {
			f.Destination = s
		}
		return err
	},
	"price": func(f *models.Flight, v any) error {
		p, err := float64Value(v)
		if err != nil {
			return err
		}
		if p < 0 {
			return fmt.Errorf("price must be non-negative, got %v", p)
		}
		f.Price = p
		return nil
	},
	"departureTime": func(f *models.Flight, v any) error {
		s, err := stringValue(v)
		if err != nil {
			return err
		}
		validated, err := validateLocalDateTime(s)
		if err != nil {
			return err
		}
		f.DepartureTime = validated
		return nil
	},
	"arrivalTime": func(f *models.Flight, v any) error {
		s, err := stringValue(v)
		if err != nil {
			return err
		}
		validated, err := validateLocalDateTime(s)
		if err != nil {
			return err
		}
		f.ArrivalTime = validated
		return nil
	},
}

// flightRepository is the PostgreSQL-backed implementation of
// [FlightRepository].
type flightRepository struct {
	db     *DB
	sb     sq.StatementBuilderType
	logger *logger.Logger
}

// NewFlightRepository constructs a [FlightRepository] backed by the provided
// database connection and logger.
func NewFlightRepository(db *DB, logger *logger.Logger) FlightRepository {
	logger.Debug().Msg("creating flight repository")
	return &flightRepository{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger,
	}
}

// Create persists a new flight inside a fresh transaction and returns the
// stored record with its server-assigned id.
func (r *flightRepository) Create(ctx context.Context, flight models.Flight) (models.Flight, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Insert(flight.TableName()).
		Columns(flightColumns[1:]...).
		Values(flight.FlightNumber, flight.Origin, flight.Destination, flight.Price, flight.DepartureTime, flight.ArrivalTime).
		Suffix("RETURNING " + strings.Join(flightColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	created, err := scanFlight(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*flightRepository.Create").Msg("error creating flight")
		return models.Flight{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// FindByID retrieves a flight by primary key. Returns [ErrNotFound] when no
// row matches.
func (r *flightRepository) FindByID(ctx context.Context, id int64) (models.Flight, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Select(flightColumns...).
		From(models.Flight{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	flight, err := scanFlight(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Flight{}, ErrNotFound
		}
		log.Err(err).Str("func", "*flightRepository.FindByID").Int64("id", id).Msg("error finding flight")
		return models.Flight{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return flight, nil
}

// FindAll retrieves every flight ordered by id ascending.
func (r *flightRepository) FindAll(ctx context.Context) ([]models.Flight, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Select(flightColumns...).
		From(models.Flight{}.TableName()).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*flightRepository.FindAll").Msg("error querying flights")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	flights := make([]models.Flight, 0)
	for rows.Next() {
		flight, scanErr := scanFlight(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		flights = append(flights, flight)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return flights, nil
}

// Update full-replaces the mutable fields of the flight with the given id.
// Returns [ErrNotFound] when the target row does not exist.
func (r *flightRepository) Update(ctx context.Context, flight models.Flight) (models.Flight, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Update(flight.TableName()).
		Set("flight_number", flight.FlightNumber).
		Set("origin", flight.Origin).
		Set("destination", flight.Destination).
		Set("price", flight.Price).
		Set("departure_time", flight.DepartureTime).
		Set("arrival_time", flight.ArrivalTime).
		Where(sq.Eq{"id": flight.ID}).
		Suffix("RETURNING " + strings.Join(flightColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	updated, err := scanFlight(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Flight{}, ErrNotFound
		}
		log.Err(err).Str("func", "*flightRepository.Update").Int64("id", flight.ID).Msg("error updating flight")
		return models.Flight{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// UpdatePartial loads the flight with the given id inside a transaction,
// applies the update map through [flightFieldSetters], and persists the
// merged record. Returns [ErrNotFound] when the target row does not exist.
func (r *flightRepository) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.Flight, error) {
	log := logger.FromContext(ctx)

	selectQuery, selectArgs, err := r.sb.Select(flightColumns...).
		From(models.Flight{}.TableName()).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	flight, err := scanFlight(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Flight{}, ErrNotFound
		}
		log.Err(err).Str("func", "*flightRepository.UpdatePartial").Int64("id", id).Msg("error loading flight")
		return models.Flight{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	applyUpdates(log, &flight, flightFieldSetters, updates)

	updateQuery, updateArgs, err := r.sb.Update(flight.TableName()).
		Set("flight_number", flight.FlightNumber).
		Set("origin", flight.Origin).
		Set("destination", flight.Destination).
		Set("price", flight.Price).
		Set("departure_time", flight.DepartureTime).
		Set("arrival_time", flight.ArrivalTime).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(flightColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanFlight(tx.QueryRowContext(ctx, updateQuery, updateArgs...))
	if err != nil {
		log.Err(err).Str("func", "*flightRepository.UpdatePartial").Int64("id", id).Msg("error updating flight")
		return models.Flight{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Flight{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// Delete removes the flight with the given id. The returned bool reports
// whether a row was actually removed.
func (r *flightRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Delete(models.Flight{}.TableName()).
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
		log.Err(err).Str("func", "*flightRepository.Delete").Int64("id", id).Msg("error deleting flight")
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

func scanFlight(row rowScanner) (models.Flight, error) {
	var flight models.Flight

	err := row.Scan(
		&flight.ID,
		&flight.FlightNumber,
		&flight.Origin,
		&flight.Destination,
		&flight.Price,
		&flight.DepartureTime,
		&flight.ArrivalTime,
	)
	if err != nil {
		return models.Flight{}, err
	}

	return flight, nil
}
