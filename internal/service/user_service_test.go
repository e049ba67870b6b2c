package service

import (
	"context"
	"testing"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssignCoach(t *testing.T) {
	coachID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	coach := &domain.User{ID: coachID, FirstName: "Max", LastName: "Hale", Role: domain.RoleCoach}
	client := &domain.User{ID: userID, Role: domain.RoleUser}

	t.Run("coach assigns a client to themselves", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		notifier := &recordingNotifier{}
		svc := NewUserService(userRepo, notifier)

		userRepo.On("GetByID", mock.Anything, coachID).Return(coach, nil)
		userRepo.On("GetByID", mock.Anything, userID).Return(client, nil)
		userRepo.On("SetAssignedCoach", mock.Anything, userID, coachID).Return(nil)
		userRepo.On("AddClientIDToCoach", mock.Anything, coachID, userID).Return(nil)

		err := svc.AssignCoach(context.Background(), Actor{ID: coachID, Role: domain.RoleCoach}, userID, coachID)

		require.NoError(t, err)
		userRepo.AssertExpectations(t)

		require.Len(t, notifier.emitted, 1)
		n := notifier.emitted[0]
		assert.Equal(t, userID, n.Recipient)
		assert.Equal(t, domain.NotifyAssignedCoach, n.Type)
		assert.Contains(t, n.Message, "Max Hale")
	})

	t.Run("coach cannot assign to another coach", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewUserService(userRepo, &recordingNotifier{})

		otherCoach := primitive.NewObjectID()
		err := svc.AssignCoach(context.Background(), Actor{ID: coachID, Role: domain.RoleCoach}, userID, otherCoach)

		assert.ErrorIs(t, err, ErrPermissionDenied)
		userRepo.AssertNotCalled(t, "SetAssignedCoach", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin assigns to any coach", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewUserService(userRepo, &recordingNotifier{})

		userRepo.On("GetByID", mock.Anything, coachID).Return(coach, nil)
		userRepo.On("GetByID", mock.Anything, userID).Return(client, nil)
		userRepo.On("SetAssignedCoach", mock.Anything, userID, coachID).Return(nil)
		userRepo.On("AddClientIDToCoach", mock.Anything, coachID, userID).Return(nil)

		err := svc.AssignCoach(context.Background(), Actor{ID: primitive.NewObjectID(), Role: domain.RoleAdmin}, userID, coachID)

		assert.NoError(t, err)
	})

	t.Run("target must be a coach", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewUserService(userRepo, &recordingNotifier{})

		notACoach := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleUser}
		userRepo.On("GetByID", mock.Anything, notACoach.ID).Return(notACoach, nil)

		err := svc.AssignCoach(context.Background(), Actor{ID: primitive.NewObjectID(), Role: domain.RoleAdmin}, userID, notACoach.ID)

		assert.ErrorIs(t, err, ErrNotACoach)
		userRepo.AssertNotCalled(t, "SetAssignedCoach", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("plain users cannot assign", func(t *testing.T) {
		svc := NewUserService(new(mocks.MockUserRepository), &recordingNotifier{})

		err := svc.AssignCoach(context.Background(), Actor{ID: userID, Role: domain.RoleUser}, userID, coachID)

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestUserGetByID(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("self read strips the password hash", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewUserService(userRepo, &recordingNotifier{})
		userRepo.On("GetByID", mock.Anything, userID).
			Return(&domain.User{ID: userID, PasswordHash: "bcrypt-hash"}, nil)

		user, err := svc.GetByID(context.Background(), Actor{ID: userID, Role: domain.RoleUser}, userID)

		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("strangers are denied", func(t *testing.T) {
		svc := NewUserService(new(mocks.MockUserRepository), &recordingNotifier{})

		_, err := svc.GetByID(context.Background(), Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}, userID)

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestClients(t *testing.T) {
	coachID := primitive.NewObjectID()

	t.Run("the coach reads their own list", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepository)
		svc := NewUserService(userRepo, &recordingNotifier{})
		userRepo.On("GetClientsByCoachID", mock.Anything, coachID).
			Return([]domain.User{{PasswordHash: "hash"}}, nil)

		clients, err := svc.Clients(context.Background(), Actor{ID: coachID, Role: domain.RoleCoach}, coachID)

		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Empty(t, clients[0].PasswordHash)
	})

	t.Run("another coach is denied", func(t *testing.T) {
		svc := NewUserService(new(mocks.MockUserRepository), &recordingNotifier{})

		_, err := svc.Clients(context.Background(), Actor{ID: primitive.NewObjectID(), Role: domain.RoleCoach}, coachID)

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
