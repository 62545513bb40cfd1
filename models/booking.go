package models

import "encoding/json"

// Booking links a user to exactly one ticket. The relation is 1:1 on the
// ticket side, enforced by a unique index on bookings.ticket_id.
//
// Reads embed the full user and ticket objects; writes accept either bare
// numeric ids or nested objects for both references.
type Booking struct {
	ID int64 `json:"id"`

	// UserID and TicketID are the foreign-key references used at the
	// persistence layer.
	UserID   int64 `json:"-"`
	TicketID int64 `json:"-"`

	// User and Ticket are the nested read-side views.
	User   *User   `json:"user,omitempty"`
	Ticket *Ticket `json:"ticket,omitempty"`
}

// TableName returns the name of the database table
// associated with the Booking model.
func (b Booking) TableName() string {
	return "bookings"
}

// UnmarshalJSON accepts "user" and "ticket" references either as bare ids or
// as nested objects carrying an "id" field.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type bookingAlias struct {
		ID     int64           `json:"id"`
		User   json.RawMessage `json:"user"`
		Ticket json.RawMessage `json:"ticket"`
	}

	var alias bookingAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	b.ID = alias.ID

	userID, rawUser, err := decodeReference(alias.User)
	if err != nil {
		return err
	}
	b.UserID = userID
	if rawUser != nil {
		var u User
		if err := json.Unmarshal(rawUser, &u); err != nil {
			return err
		}
		b.User = &u
	}

	ticketID, rawTicket, err := decodeReference(alias.Ticket)
	if err != nil {
		return err
	}
	b.TicketID = ticketID
	if rawTicket != nil {
		var t Ticket
		if err := json.Unmarshal(rawTicket, &t); err != nil {
			return err
		}
		b.Ticket = &t
	}

	return nil
}
