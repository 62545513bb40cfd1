package models

// Flight represents a scheduled flight between two airports.
//
// Departure and arrival times are ISO-8601 local date-time strings
// (e.g. "2025-01-02T10:00"). They are stored and round-tripped verbatim;
// no timezone normalization is performed.
type Flight struct {
	ID            int64   `json:"id"`
	FlightNumber  int     `json:"flightNumber"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Price         float64 `json:"price"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
}

// TableName returns the name of the database table
// associated with the Flight model.
func (f Flight) TableName() string {
	return "flights"
}
