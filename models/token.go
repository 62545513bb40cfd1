package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// Subject is a cached copy of the "sub" claim, the email of the user the
// token was issued for. It avoids repeated claim lookups on the hot path.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"token"`

	// Subject is the email extracted from the "sub" claim.
	Subject string `json:"-"`
}

// GetEmail returns the email the token was issued for. Both token
// constructors populate Subject from the "sub" claim, so the cached copy is
// authoritative.
func (t *Token) GetEmail() string {
	return t.Subject
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
