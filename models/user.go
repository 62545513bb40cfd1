package models

// User represents an account entity used for authentication and booking
// ownership.
//
// The Password field is dual-purpose: on input it carries the plain-text
// password supplied by the client, after creation it always holds the bcrypt
// hash produced by the user service. The plain value never reaches the
// persistence layer.
type User struct {
	// ID is the server-assigned identifier. Immutable after creation.
	ID int64 `json:"id"`

	// FirstName is the user's given name. Required.
	FirstName string `json:"firstName"`

	// LastName is the user's family name. Required.
	LastName string `json:"lastName"`

	// Email identifies the user for login. Unique per business rule,
	// enforced by a unique index on the users table.
	Email string `json:"email"`

	// Password holds the plain-text password on input and the bcrypt hash
	// everywhere else.
	Password string `json:"password"`

	// Role is the authorization level. Defaults to CUSTOMER when empty.
	Role UserRole `json:"role"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
