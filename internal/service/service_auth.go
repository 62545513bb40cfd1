package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avialine/flight-booking/internal/config"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/internal/utils"
	"github.com/avialine/flight-booking/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles credential verification and JWT token lifecycle using a
// UserRepository for account lookups and bcrypt for password comparison.
type authService struct {
	// userRepository is the data-access layer used to look up accounts.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Login authenticates an existing user.
//
// It looks up the account by email and compares the supplied plain-text
// password against the stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - A wrapped storage error if the lookup fails (e.g. no such account —
//     see store.ErrNotFound).
//   - ErrWrongPassword if the password does not match the stored hash.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(password)); err != nil {
		log.Err(err).Int64("id", foundUser.ID).Str("email", foundUser.Email).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim and the user's email as the "sub" claim, and
// expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// IsValid reports whether tokenString passes full validation (signature,
// expiry, issuer) and its subject equals the given subject.
func (a *authService) IsValid(ctx context.Context, tokenString, subject string) bool {
	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return false
	}

	return token.GetEmail() == subject
}
