package service

import (
	"context"
	"fmt"

	"github.com/avialine/flight-booking/internal/config"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/store"
	"github.com/avialine/flight-booking/models"
	"golang.org/x/crypto/bcrypt"
)

// userService is the concrete implementation of UserService. It owns the
// plain-text-to-bcrypt boundary: every password that reaches the repository
// has already been hashed here.
type userService struct {
	userRepository store.UserRepository
	bcryptCost     int
	logger         *logger.Logger
}

// NewUserService constructs a UserService wired to the given UserRepository.
func NewUserService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// Create registers a new user. The plain-text password is replaced with its
// bcrypt hash before persistence; a missing role defaults to CUSTOMER.
//
// Returns ErrInvalidDataProvided when email or password is empty, or a
// wrapped storage error (e.g. store.ErrEmailAlreadyExists).
func (s *userService) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || user.Password == "" {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := s.hashPassword(user.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}
	user.Password = hash

	if user.Role == "" {
		user.Role = models.RoleCustomer
	}

	created, err := s.userRepository.Create(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (models.User, error) {
	return s.userRepository.FindByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.userRepository.FindByEmail(ctx, email)
}

func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.userRepository.FindAll(ctx)
}

// Update full-replaces a user record. The incoming password is treated as
// plain text and re-hashed before persistence.
func (s *userService) Update(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || user.Password == "" {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := s.hashPassword(user.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}
	user.Password = hash

	updated, err := s.userRepository.Update(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated, nil
}

// UpdatePartial merges the update map into the stored user. When the map
// contains a password it arrives in plain text and is hashed here, so the
// repository only ever stores bcrypt hashes.
func (s *userService) UpdatePartial(ctx context.Context, id int64, updates map[string]any) (models.User, error) {
	log := logger.FromContext(ctx)

	if password, ok := updates["password"].(string); ok && password != "" {
		hash, err := s.hashPassword(password)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
		}
		updates["password"] = hash
	}

	updated, err := s.userRepository.UpdatePartial(ctx, id, updates)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("partial user update ended with error")
		return models.User{}, fmt.Errorf("partial user update ended with error: %w", err)
	}

	return updated, nil
}

// Delete removes a user. Deleting an absent user is not an error; the miss is
// logged and the call succeeds.
func (s *userService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	deleted, err := s.userRepository.Delete(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}
	if !deleted {
		log.Info().Int64("id", id).Msg("delete of non-existent user")
	}

	return nil
}

func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
