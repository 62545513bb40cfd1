package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketJoinedRows(tickets ...models.Ticket) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "flight_id", "seat_number", "status",
		"f_id", "flight_number", "origin", "destination", "price", "departure_time", "arrival_time",
	})
	for _, ticket := range tickets {
		flight := ticket.Flight
		rows.AddRow(
			ticket.ID, ticket.FlightID, ticket.SeatNumber, string(ticket.Status),
			flight.ID, flight.FlightNumber, flight.Origin, flight.Destination,
			flight.Price, flight.DepartureTime, flight.ArrivalTime,
		)
	}
	return rows
}

func testTicket() models.Ticket {
	flight := testFlight()
	return models.Ticket{
		ID:         10,
		FlightID:   flight.ID,
		Flight:     &flight,
		SeatNumber: 1,
		Status:     models.TicketFree,
	}
}

func TestTicketRepository_Create_EmbedsFlight(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTicketRepository(db, logger.Nop())

	want := testTicket()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(int64(1), 1, "FREE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery("SELECT (.+) FROM tickets t JOIN flights f").
		WithArgs(int64(10)).
		WillReturnRows(ticketJoinedRows(want))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), models.Ticket{FlightID: 1, SeatNumber: 1})
	require.NoError(t, err)

	assert.Equal(t, want, created)
	require.NotNil(t, created.Flight)
	assert.Equal(t, "A", created.Flight.Origin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_Create_MissingFlight(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTicketRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tickets").
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.Ticket{FlightID: 999999, SeatNumber: 1})
	assert.ErrorIs(t, err, ErrReferencedRowMissing)
}

func TestTicketRepository_CreateBatch_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTicketRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM flights").
		WithArgs(int64(1)).
		WillReturnRows(flightRows(testFlight()))
	mock.ExpectQuery("INSERT INTO tickets").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "status"}).
			AddRow(int64(10), 1, "FREE").
			AddRow(int64(11), 2, "FREE").
			AddRow(int64(12), 3, "FREE"))
	mock.ExpectCommit()

	tickets, err := repo.CreateBatch(context.Background(), 1, 3)
	require.NoError(t, err)

	require.Len(t, tickets, 3)
	for i, ticket := range tickets {
		assert.Equal(t, i+1, ticket.SeatNumber)
		assert.Equal(t, models.TicketFree, ticket.Status)
		require.NotNil(t, ticket.Flight)
		assert.Equal(t, int64(1), ticket.Flight.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_CreateBatch_MissingFlight(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTicketRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM flights").
		WithArgs(int64(999999)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CreateBatch(context.Background(), 999999, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTicketRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM tickets t JOIN flights f").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketRepository_UpdatePartial_StatusAndFlightReference(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTicketRepository(db, logger.Nop())

	want := testTicket()
	want.Status = models.TicketBooked

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM tickets").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "flight_id", "seat_number", "status"}).
			AddRow(int64(10), int64(1), 1, "FREE"))
	mock.ExpectExec("UPDATE tickets").
		WithArgs(int64(1), 1, "BOOKED", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM tickets t JOIN flights f").
		WithArgs(int64(10)).
		WillReturnRows(ticketJoinedRows(want))
	mock.ExpectCommit()

	updated, err := repo.UpdatePartial(context.Background(), 10, map[string]any{
		"status": "BOOKED",
		"flight": map[string]any{"id": float64(1)},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TicketBooked, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
