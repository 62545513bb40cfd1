package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/avialine/flight-booking/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the email of the user the token is issued for
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	subject       - email of the user the token is issued for
//	tokenDuration - how long the token remains valid
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Returns:
//
//	models.Token - contains the signed token string and the jwt.Token object
//	error        - non-nil if parameters are invalid or signing fails
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("flight-booking", "a@x", 24*time.Hour, "secret")
func GenerateJWTToken(issuer, subject string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || subject == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, Subject: subject}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Parameters:
//
//	tokenString   - the raw signed JWT string to validate and parse
//	tokenSignKey  - secret key used to verify the token signature
//	tokenIssuer   - expected issuer value to validate against the iss claim
//
// Returns:
//
//	models.Token - contains the parsed jwt.Token object and the extracted Subject
//	error        - non-nil if validation fails or the subject claim is missing
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "flight-booking")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, SignedString: tokenString, Subject: subject}, nil
}
