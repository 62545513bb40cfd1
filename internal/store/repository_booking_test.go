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

func bookingJoinedRows(bookings ...models.Booking) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "ticket_id",
		"u_id", "first_name", "last_name", "email", "password", "role",
		"t_id", "flight_id", "seat_number", "status",
		"f_id", "flight_number", "origin", "destination", "price", "departure_time", "arrival_time",
	})
	for _, booking := range bookings {
		user := booking.User
		ticket := booking.Ticket
		flight := ticket.Flight
		rows.AddRow(
			booking.ID, booking.UserID, booking.TicketID,
			user.ID, user.FirstName, user.LastName, user.Email, user.Password, string(user.Role),
			ticket.ID, ticket.FlightID, ticket.SeatNumber, string(ticket.Status),
			flight.ID, flight.FlightNumber, flight.Origin, flight.Destination,
			flight.Price, flight.DepartureTime, flight.ArrivalTime,
		)
	}
	return rows
}

func testBooking() models.Booking {
	ticket := testTicket()
	return models.Booking{
		ID:       100,
		UserID:   7,
		TicketID: ticket.ID,
		User:     &models.User{ID: 7, FirstName: "Ada", LastName: "L", Email: "a@x", Password: "h", Role: models.RoleCustomer},
		Ticket:   &ticket,
	}
}

func TestBookingRepository_Create_EmbedsUserAndTicket(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	want := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(int64(7), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery("SELECT (.+) FROM bookings b JOIN users u").
		WithArgs(int64(100)).
		WillReturnRows(bookingJoinedRows(want))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), models.Booking{UserID: 7, TicketID: 10})
	require.NoError(t, err)

	assert.Equal(t, want, created)
	require.NotNil(t, created.User)
	require.NotNil(t, created.Ticket)
	require.NotNil(t, created.Ticket.Flight)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create_TicketAlreadyBooked(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.Booking{UserID: 7, TicketID: 10})
	assert.ErrorIs(t, err, ErrTicketAlreadyBooked)
}

func TestBookingRepository_Create_MissingReference(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.Booking{UserID: 999999, TicketID: 10})
	assert.ErrorIs(t, err, ErrReferencedRowMissing)
}

func TestBookingRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM bookings b JOIN users u").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRepository_UpdatePartial_ReassignsTicket(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	want := testBooking()
	want.TicketID = 11
	want.Ticket.ID = 11

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ticket_id"}).
			AddRow(int64(100), int64(7), int64(10)))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(7), int64(11), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM bookings b JOIN users u").
		WithArgs(int64(100)).
		WillReturnRows(bookingJoinedRows(want))
	mock.ExpectCommit()

	updated, err := repo.UpdatePartial(context.Background(), 100, map[string]any{
		"ticket": float64(11),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), updated.TicketID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Delete_Existing(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, deleted)
}
