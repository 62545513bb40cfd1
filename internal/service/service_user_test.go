package service

import (
	"context"
	"strings"
	"testing"

	"github.com/avialine/flight-booking/internal/config"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(repo *mockUserRepository) UserService {
	return NewUserService(repo, config.App{BcryptCost: bcrypt.MinCost}, logger.Nop())
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	var persisted models.User
	repo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			persisted = user
			user.ID = 1
			return user, nil
		},
	}
	svc := newTestUserService(repo)

	created, err := svc.Create(context.Background(), models.User{
		FirstName: "Ada",
		LastName:  "L",
		Email:     "a@x",
		Password:  "pw",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.NotEqual(t, "pw", persisted.Password, "plain-text password must never reach the repository")
	assert.True(t, strings.HasPrefix(persisted.Password, "$2"), "stored password must be a bcrypt hash")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.Password), []byte("pw")))
}

func TestUserService_Create_DefaultsRoleToCustomer(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			return user, nil
		},
	}
	svc := newTestUserService(repo)

	created, err := svc.Create(context.Background(), models.User{Email: "a@x", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, models.RoleCustomer, created.Role)
}

func TestUserService_Create_InvalidData(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{})

	_, err := svc.Create(context.Background(), models.User{Email: "a@x"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Create(context.Background(), models.User{Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserService_UpdatePartial_HashesPassword(t *testing.T) {
	var receivedUpdates map[string]any
	repo := &mockUserRepository{
		updatePartialFn: func(_ context.Context, id int64, updates map[string]any) (models.User, error) {
			receivedUpdates = updates
			return models.User{ID: id}, nil
		},
	}
	svc := newTestUserService(repo)

	_, err := svc.UpdatePartial(context.Background(), 1, map[string]any{
		"password":  "new-pw",
		"firstName": "Grace",
	})
	require.NoError(t, err)

	hashed, ok := receivedUpdates["password"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(hashed, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("new-pw")))
	assert.Equal(t, "Grace", receivedUpdates["firstName"], "non-password fields pass through untouched")
}

func TestUserService_Delete_AbsentIsNotAnError(t *testing.T) {
	repo := &mockUserRepository{
		deleteFn: func(_ context.Context, _ int64) (bool, error) {
			return false, nil
		},
	}
	svc := newTestUserService(repo)

	assert.NoError(t, svc.Delete(context.Background(), 999999))
}
