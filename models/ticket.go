package models

import "encoding/json"

// Ticket represents a single seat on a flight.
//
// On reads the owning flight is embedded as a full nested object. On writes
// the "flight" field accepts either a bare numeric flight id or a nested
// object carrying an "id" field; both populate FlightID.
type Ticket struct {
	ID int64 `json:"id"`

	// FlightID is the owning flight reference used at the persistence layer.
	FlightID int64 `json:"-"`

	// Flight is the nested read-side view of the owning flight.
	Flight *Flight `json:"flight,omitempty"`

	// SeatNumber is the positive seat index within the flight.
	SeatNumber int `json:"seatNumber"`

	// Status is the sale state of the seat. Empty on input means FREE.
	Status TicketStatus `json:"status,omitempty"`
}

// TableName returns the name of the database table
// associated with the Ticket model.
func (t Ticket) TableName() string {
	return "tickets"
}

// UnmarshalJSON accepts the "flight" reference either as a bare id or as a
// nested object, keeping the rest of the decoding standard.
func (t *Ticket) UnmarshalJSON(b []byte) error {
	type ticketAlias struct {
		ID         int64           `json:"id"`
		Flight     json.RawMessage `json:"flight"`
		SeatNumber int             `json:"seatNumber"`
		Status     TicketStatus    `json:"status"`
	}

	var alias ticketAlias
	if err := json.Unmarshal(b, &alias); err != nil {
		return err
	}

	t.ID = alias.ID
	t.SeatNumber = alias.SeatNumber
	t.Status = alias.Status

	flightID, flight, err := decodeReference(alias.Flight)
	if err != nil {
		return err
	}
	t.FlightID = flightID
	if flight != nil {
		var f Flight
		if err := json.Unmarshal(alias.Flight, &f); err != nil {
			return err
		}
		t.Flight = &f
	}

	return nil
}

// decodeReference decodes a JSON reference that is either a bare number
// ("ticket": 5) or an object with an id field ("ticket": {"id": 5}).
// The returned raw pointer is non-nil only for the object form.
func decodeReference(raw json.RawMessage) (int64, json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil, nil
	}

	if raw[0] == '{' {
		var ref struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(raw, &ref); err != nil {
			return 0, nil, err
		}
		return ref.ID, raw, nil
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, nil, err
	}
	return id, nil, nil
}
