package service

import (
	"context"
	"testing"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/service/mocks"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "unit-test-secret"

func TestRegisterNewUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, 0)

	userRepo.On("GetByEmail", mock.Anything, "dana@example.com").Return(nil, repository.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(primitive.NewObjectID(), nil)

	user, err := svc.Register(context.Background(), " Dana ", "Reyes", " Dana@Example.com ", "s3cret-pass", "")

	require.NoError(t, err)
	assert.Equal(t, "Dana", user.FirstName)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.ID.IsZero())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, 0)

	userRepo.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{Email: "taken@example.com"}, nil)

	_, err := svc.Register(context.Background(), "A", "B", "taken@example.com", "password1", domain.RoleUser)

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateRace(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, 0)

	// The existence check misses, the unique index catches the race.
	userRepo.On("GetByEmail", mock.Anything, "raced@example.com").Return(nil, repository.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(primitive.NilObjectID, repository.ErrDuplicateKey)

	_, err := svc.Register(context.Background(), "A", "B", "raced@example.com", "password1", domain.RoleUser)

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterInvalidRole(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, 0)

	_, err := svc.Register(context.Background(), "A", "B", "a@b.com", "password1", domain.Role("superuser"))

	assert.ErrorIs(t, err, ErrInvalidRole)
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{
		ID:           primitive.NewObjectID(),
		Email:        "dana@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCoach,
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewAuthService(userRepo, testSecret, 0)
		userRepo.On("GetByEmail", mock.Anything, "dana@example.com").Return(stored, nil)

		token, user, err := svc.Login(context.Background(), "dana@example.com", "correct-horse")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Empty(t, user.PasswordHash)

		claims := &jwtClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, stored.ID.Hex(), claims.UserID)
		assert.Equal(t, domain.RoleCoach, claims.Role)
		assert.Equal(t, "coaching-app", claims.Issuer)
	})

	t.Run("wrong password", func(t *testing.T) {
		fresh := &domain.User{ID: stored.ID, Email: stored.Email, PasswordHash: string(hash)}
		userRepo := new(mocks.MockUserRepository)
		svc := NewAuthService(userRepo, testSecret, 0)
		userRepo.On("GetByEmail", mock.Anything, "dana@example.com").Return(fresh, nil)

		_, user, err := svc.Login(context.Background(), "dana@example.com", "wrong")

		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.Nil(t, user)
	})

	t.Run("unknown email maps to the same failure", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewAuthService(userRepo, testSecret, 0)
		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthService(new(mocks.MockUserRepository), "", 0)
	})
}
