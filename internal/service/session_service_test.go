package service

import (
	"context"
	"testing"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sessionFixture struct {
	sessionRepo  *mocks.MockSessionRepository
	workoutRepo  *mocks.MockWorkoutRepository
	combinedRepo *mocks.MockCombinedWorkoutRepository
	notifier     *recordingNotifier
	svc          SessionService
	coach        Actor
	session      *domain.Session
}

func newSessionFixture(cascade CascadePolicy) *sessionFixture {
	f := &sessionFixture{
		sessionRepo:  new(mocks.MockSessionRepository),
		workoutRepo:  new(mocks.MockWorkoutRepository),
		combinedRepo: new(mocks.MockCombinedWorkoutRepository),
		notifier:     &recordingNotifier{},
	}
	f.svc = NewSessionService(f.sessionRepo, f.workoutRepo, f.combinedRepo, f.notifier, cascade)
	f.coach = Actor{ID: primitive.NewObjectID(), Role: domain.RoleCoach}
	f.session = &domain.Session{
		ID:        primitive.NewObjectID(),
		Name:      "Monday push",
		CreatedBy: f.coach.ID,
	}
	return f
}

func TestAddWorkoutAssignsNextOrder(t *testing.T) {
	cases := []struct {
		name      string
		maxOrder  int
		wantOrder int
	}{
		{"empty session starts at one", 0, 1},
		{"appends after the highest position", 2, 3},
		{"gaps are not compacted", 7, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newSessionFixture(CascadeAll)
			workout := &domain.Workout{ID: primitive.NewObjectID(), Name: "Squats"}

			f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
			f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)
			f.workoutRepo.On("MaxOrderInSession", mock.Anything, f.session.ID).Return(tc.maxOrder, nil)
			f.workoutRepo.On("Update", mock.Anything, workout).Return(nil)

			got, err := f.svc.AddWorkout(context.Background(), f.coach, f.session.ID, workout.ID)

			require.NoError(t, err)
			assert.Equal(t, tc.wantOrder, got.Order)
			require.NotNil(t, got.SessionID)
			assert.Equal(t, f.session.ID, *got.SessionID)
			f.workoutRepo.AssertExpectations(t)
		})
	}
}

func TestAddWorkoutRejectsAttachedWorkout(t *testing.T) {
	f := newSessionFixture(CascadeAll)
	other := primitive.NewObjectID()
	workout := &domain.Workout{ID: primitive.NewObjectID(), SessionID: &other, Order: 2}

	f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
	f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)

	_, err := f.svc.AddWorkout(context.Background(), f.coach, f.session.ID, workout.ID)

	assert.ErrorIs(t, err, ErrAlreadyInSession)
	f.workoutRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRemoveWorkoutClearsMembership(t *testing.T) {
	f := newSessionFixture(CascadeAll)
	workout := &domain.Workout{ID: primitive.NewObjectID(), SessionID: &f.session.ID, Order: 3}

	f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
	f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)
	f.workoutRepo.On("Update", mock.Anything, workout).Return(nil)

	err := f.svc.RemoveWorkout(context.Background(), f.coach, f.session.ID, workout.ID)

	require.NoError(t, err)
	assert.Nil(t, workout.SessionID)
	assert.Equal(t, 0, workout.Order)
}

func TestRemoveWorkoutNotInSession(t *testing.T) {
	f := newSessionFixture(CascadeAll)
	workout := &domain.Workout{ID: primitive.NewObjectID()}

	f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
	f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)

	err := f.svc.RemoveWorkout(context.Background(), f.coach, f.session.ID, workout.ID)

	assert.ErrorIs(t, err, ErrNotInSession)
}

func TestUpdateWorkoutOrder(t *testing.T) {
	t.Run("rejects non-positive order", func(t *testing.T) {
		f := newSessionFixture(CascadeAll)

		err := f.svc.UpdateWorkoutOrder(context.Background(), f.coach, f.session.ID, primitive.NewObjectID(), 0)

		assert.ErrorIs(t, err, ErrInvalidOrder)
		f.sessionRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("sets the order directly without renumbering", func(t *testing.T) {
		f := newSessionFixture(CascadeAll)
		workout := &domain.Workout{ID: primitive.NewObjectID(), SessionID: &f.session.ID, Order: 1}

		f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
		f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)
		// Position 2 may already be taken by another workout; that is fine.
		f.workoutRepo.On("UpdateOrder", mock.Anything, workout.ID, 2).Return(nil)

		err := f.svc.UpdateWorkoutOrder(context.Background(), f.coach, f.session.ID, workout.ID, 2)

		require.NoError(t, err)
		f.workoutRepo.AssertExpectations(t)
	})

	t.Run("rejects a workout from another session", func(t *testing.T) {
		f := newSessionFixture(CascadeAll)
		other := primitive.NewObjectID()
		workout := &domain.Workout{ID: primitive.NewObjectID(), SessionID: &other, Order: 1}

		f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
		f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)

		err := f.svc.UpdateWorkoutOrder(context.Background(), f.coach, f.session.ID, workout.ID, 2)

		assert.ErrorIs(t, err, ErrNotInSession)
		f.workoutRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCombinedWorkoutSequenceIsIndependent(t *testing.T) {
	f := newSessionFixture(CascadeAll)
	cw := &domain.CombinedWorkout{ID: primitive.NewObjectID(), Name: "Circuit A"}

	f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
	f.combinedRepo.On("GetByID", mock.Anything, cw.ID).Return(cw, nil)
	// Plain workouts in this session already occupy positions 1..4, but the
	// combined sequence only has one member, so the next slot is 2.
	f.combinedRepo.On("MaxOrderInSession", mock.Anything, f.session.ID).Return(1, nil)
	f.combinedRepo.On("Update", mock.Anything, cw).Return(nil)

	got, err := f.svc.AddCombinedWorkout(context.Background(), f.coach, f.session.ID, cw.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Order)
	f.workoutRepo.AssertNotCalled(t, "MaxOrderInSession", mock.Anything, mock.Anything)
}

func TestSessionDeleteCascade(t *testing.T) {
	t.Run("all removes both content kinds", func(t *testing.T) {
		f := newSessionFixture(CascadeAll)
		f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
		f.workoutRepo.On("DeleteBySessionID", mock.Anything, f.session.ID).Return(nil)
		f.combinedRepo.On("DeleteBySessionID", mock.Anything, f.session.ID).Return(nil)
		f.sessionRepo.On("Delete", mock.Anything, f.session.ID).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), f.coach, f.session.ID))
		f.workoutRepo.AssertExpectations(t)
		f.combinedRepo.AssertExpectations(t)
	})

	t.Run("workouts leaves combined workouts attached", func(t *testing.T) {
		f := newSessionFixture(CascadeWorkouts)
		f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
		f.workoutRepo.On("DeleteBySessionID", mock.Anything, f.session.ID).Return(nil)
		f.sessionRepo.On("Delete", mock.Anything, f.session.ID).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), f.coach, f.session.ID))
		f.combinedRepo.AssertNotCalled(t, "DeleteBySessionID", mock.Anything, mock.Anything)
	})

	t.Run("none deletes only the session", func(t *testing.T) {
		f := newSessionFixture(CascadeNone)
		f.sessionRepo.On("GetByID", mock.Anything, f.session.ID).Return(f.session, nil)
		f.sessionRepo.On("Delete", mock.Anything, f.session.ID).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), f.coach, f.session.ID))
		f.workoutRepo.AssertNotCalled(t, "DeleteBySessionID", mock.Anything, mock.Anything)
		f.combinedRepo.AssertNotCalled(t, "DeleteBySessionID", mock.Anything, mock.Anything)
	})
}

func TestSessionCreatePermissionsAndNotifications(t *testing.T) {
	t.Run("plain users cannot create sessions", func(t *testing.T) {
		f := newSessionFixture(CascadeAll)
		user := Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}

		_, err := f.svc.Create(context.Background(), user, &domain.Session{Name: "x"})

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("assignees are notified", func(t *testing.T) {
		f := newSessionFixture(CascadeAll)
		assignee := primitive.NewObjectID()
		session := &domain.Session{Name: "Leg day", AssignedTo: []primitive.ObjectID{assignee}}

		f.sessionRepo.On("Create", mock.Anything, session).Return(primitive.NewObjectID(), nil)

		_, err := f.svc.Create(context.Background(), f.coach, session)

		require.NoError(t, err)
		require.Len(t, f.notifier.emitted, 1)
		assert.Equal(t, assignee, f.notifier.emitted[0].Recipient)
		assert.Equal(t, domain.NotifySessionAssigned, f.notifier.emitted[0].Type)
	})
}

func TestSessionDeleteMissingSession(t *testing.T) {
	f := newSessionFixture(CascadeAll)
	id := primitive.NewObjectID()
	f.sessionRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	err := f.svc.Delete(context.Background(), f.coach, id)

	assert.ErrorIs(t, err, ErrSessionNotFound)
}
