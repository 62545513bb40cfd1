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
	"github.com/jackc/pgerrcode"
)

// userColumns is the canonical column order used by every user query and
// every scan in this file.
var userColumns = []string{"id", "first_name", "last_name", "email", "password", "role"}

// userFieldSetters dispatches PATCH field names to typed setters. The "id"
// field never appears here; it is filtered out by applyUpdates.
var userFieldSetters = map[string]func(u *models.User, v any) error{
	"firstName": func(u *models.User, v any) error {
		s, err := stringValue(v)
		if err == nil {
			u.FirstName = s
		}
		return err
	},
	"lastName": func(u *models.User, v any) error {
		s, err := stringValue(v)
		if err == nil {
			u.LastName = s
		}
		return err
	},
	"email": func(u *models.User, v any) error {
		s, err := stringValue(v)
		if err == nil {
			u.Email = s
		}
		return err
	},
	"password": func(u *models.User, v any) error {
		s, err := stringValue(v)
		if err == nil {
			u.Password = s
		}
		return err
	},
	"role": func(u *models.User, v any) error {
		s, err := stringValue(v)
		if err != nil {
			return err
		}
		role := models.UserRole(s)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", s)
		}
		u.Role = role
		return nil
	},
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	sb     sq.StatementBuilderType
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger,
	}
}

// Create persists a new user record inside a fresh transaction and returns
// the canonical database representation with the server-assigned id.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Insert(user.TableName()).
		Columns(userColumns[1:]...).
		Values(user.FirstName, user.LastName, user.Email, user.Password, string(user.Role)).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	created, err := scanUser(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// FindByID retrieves a user by primary key. Returns [ErrNotFound] when no
// row matches.
func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindByID").Int64("id", id).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindByEmail retrieves the first user whose email column equals email,
// ordered by id. Returns [ErrNotFound] when no row matches.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindByEmail").Msg("error finding user by email")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindAll retrieves every user ordered by id ascending.
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("error querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// Update full-replaces the mutable fields of the user with the given id.
// Returns [ErrNotFound] when the target row does not exist.
func (r *userRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Update(user.TableName()).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", user.Email).
		Set("password", user.Password).
		Set("role", string(user.Role)).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	updated, err := scanUser(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		log.Err(err).Str("func", "*userRepository.Update").Int64("id", user.ID).Msg("error updating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// UpdatePartial loads the user with the given id inside a transaction,
// applies the update map through [userFieldSetters], and persists the merged
// record. Unknown fields are logged and skipped; "id" is always ignored.
//
// Returns [ErrNotFound] when the target row does not exist; in that case
// nothing is committed.
func (r *userRepository) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.User, error) {
	log := logger.FromContext(ctx)

	selectQuery, selectArgs, err := r.sb.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	user, err := scanUser(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		log.Err(err).Str("func", "*userRepository.UpdatePartial").Int64("id", id).Msg("error loading user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	applyUpdates(log, &user, userFieldSetters, updates)

	updateQuery, updateArgs, err := r.sb.Update(user.TableName()).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", user.Email).
		Set("password", user.Password).
		Set("role", string(user.Role)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(tx.QueryRowContext(ctx, updateQuery, updateArgs...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePartial").Int64("id", id).Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// Delete removes the user with the given id. The returned bool reports
// whether a row was actually removed.
func (r *userRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Delete(models.User{}.TableName()).
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
		log.Err(err).Str("func", "*userRepository.Delete").Int64("id", id).Msg("error deleting user")
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

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var role string

	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password, &role); err != nil {
		return models.User{}, err
	}

	user.Role = models.UserRole(role)
	return user, nil
}
