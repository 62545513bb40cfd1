package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a queried record does not exist in the
	// database.
	ErrNotFound = errors.New("record not found")

	// ErrEmailAlreadyExists is returned when an attempt to create a user
	// fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrTicketAlreadyBooked is returned when an insert into bookings
	// violates the unique index on ticket_id, i.e. the ticket is already
	// linked to another booking.
	ErrTicketAlreadyBooked = errors.New("ticket is already booked")

	// ErrReferencedRowMissing is returned when a foreign-key constraint
	// rejects a write because the referenced user, ticket, or flight does
	// not exist.
	ErrReferencedRowMissing = errors.New("referenced record does not exist")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
