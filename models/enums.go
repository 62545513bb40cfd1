package models

// UserRole describes the authorization level of a user account.
// Roles are persisted and serialized as their symbolic names.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleCustomer UserRole = "CUSTOMER"
)

// Valid reports whether the role is one of the known symbolic names.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// TicketStatus describes the sale state of a single seat on a flight.
// Statuses are persisted and serialized as their symbolic names.
type TicketStatus string

const (
	// TicketFree marks a ticket that is available for booking.
	TicketFree TicketStatus = "FREE"

	// TicketBooked marks a ticket that is reserved but not yet paid for.
	TicketBooked TicketStatus = "BOOKED"

	// TicketPurchased marks a ticket that has been paid for.
	TicketPurchased TicketStatus = "PURCHASED"
)

// Valid reports whether the status is one of the known symbolic names.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketFree, TicketBooked, TicketPurchased:
		return true
	}
	return false
}
