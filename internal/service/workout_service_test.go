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

type workoutFixture struct {
	workoutRepo  *mocks.MockWorkoutRepository
	exerciseRepo *mocks.MockExerciseRepository
	notifier     *recordingNotifier
	svc          WorkoutService
	coach        Actor
}

func newWorkoutFixture() *workoutFixture {
	f := &workoutFixture{
		workoutRepo:  new(mocks.MockWorkoutRepository),
		exerciseRepo: new(mocks.MockExerciseRepository),
		notifier:     &recordingNotifier{},
	}
	f.svc = NewWorkoutService(f.workoutRepo, f.exerciseRepo, f.notifier)
	f.coach = Actor{ID: primitive.NewObjectID(), Role: domain.RoleCoach}
	return f
}

func TestWorkoutCreateValidatesReferencedExercises(t *testing.T) {
	f := newWorkoutFixture()
	known := domain.Exercise{ID: primitive.NewObjectID(), Name: "Deadlift"}
	missing := primitive.NewObjectID()

	workout := &domain.Workout{
		Name: "Pull day",
		Exercises: []domain.WorkoutExercise{
			{ExerciseID: &known.ID},
			{ExerciseID: &missing},
		},
	}

	f.exerciseRepo.On("GetByIDs", mock.Anything, []primitive.ObjectID{known.ID, missing}).
		Return([]domain.Exercise{known}, nil)

	_, err := f.svc.Create(context.Background(), f.coach, workout)

	assert.ErrorIs(t, err, ErrUnknownExerciseID)
	f.workoutRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWorkoutCreateRejectsUnnamedEmbeddedExercise(t *testing.T) {
	f := newWorkoutFixture()
	workout := &domain.Workout{
		Name: "Push day",
		Exercises: []domain.WorkoutExercise{
			{Exercise: domain.ExerciseDetail{Name: "   "}},
		},
	}

	_, err := f.svc.Create(context.Background(), f.coach, workout)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestWorkoutCreateMixedStrategies(t *testing.T) {
	f := newWorkoutFixture()
	known := domain.Exercise{ID: primitive.NewObjectID(), Name: "Deadlift"}
	workout := &domain.Workout{
		Name: "Mixed day",
		Exercises: []domain.WorkoutExercise{
			{Exercise: domain.ExerciseDetail{Name: "Burpees"}},
			{ExerciseID: &known.ID},
		},
	}

	f.exerciseRepo.On("GetByIDs", mock.Anything, []primitive.ObjectID{known.ID}).
		Return([]domain.Exercise{known}, nil)
	f.workoutRepo.On("Create", mock.Anything, workout).Return(primitive.NewObjectID(), nil)

	got, err := f.svc.Create(context.Background(), f.coach, workout)

	require.NoError(t, err)
	assert.Equal(t, f.coach.ID, got.CreatedBy)
}

func TestWorkoutCreateRequiresCoach(t *testing.T) {
	f := newWorkoutFixture()
	user := Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}

	_, err := f.svc.Create(context.Background(), user, &domain.Workout{Name: "x"})

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestWorkoutGetByIDResolvesNames(t *testing.T) {
	f := newWorkoutFixture()
	known := domain.Exercise{ID: primitive.NewObjectID(), Name: "Deadlift"}
	gone := primitive.NewObjectID()
	workout := &domain.Workout{
		ID:        primitive.NewObjectID(),
		CreatedBy: f.coach.ID,
		Exercises: []domain.WorkoutExercise{
			{ExerciseID: &known.ID},
			{ExerciseID: &gone},
		},
	}

	f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)
	f.exerciseRepo.On("GetByIDs", mock.Anything, []primitive.ObjectID{known.ID, gone}).
		Return([]domain.Exercise{known}, nil)

	got, err := f.svc.GetByID(context.Background(), f.coach, workout.ID)

	require.NoError(t, err)
	assert.Equal(t, "Deadlift", got.Exercises[0].ResolvedName)
	// A library entry deleted after the workout was saved leaves the name
	// blank instead of failing the read.
	assert.Empty(t, got.Exercises[1].ResolvedName)
}

func TestWorkoutVisibilityForPlainUsers(t *testing.T) {
	f := newWorkoutFixture()
	stranger := Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}
	workout := &domain.Workout{
		ID:        primitive.NewObjectID(),
		CreatedBy: f.coach.ID,
	}

	f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)

	_, err := f.svc.GetByID(context.Background(), stranger, workout.ID)

	assert.ErrorIs(t, err, ErrWorkoutAccess)
}

func TestWorkoutListScopesPlainUsers(t *testing.T) {
	f := newWorkoutFixture()
	user := Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}

	f.workoutRepo.On("List", mock.Anything, mock.MatchedBy(func(filter repository.WorkoutFilter) bool {
		return filter.VisibleTo != nil && *filter.VisibleTo == user.ID
	})).Return([]domain.Workout{}, nil)

	_, err := f.svc.List(context.Background(), user, repository.WorkoutFilter{})

	require.NoError(t, err)
	f.workoutRepo.AssertExpectations(t)
}

func TestWorkoutUpdatePreservesPlacement(t *testing.T) {
	f := newWorkoutFixture()
	sessionID := primitive.NewObjectID()
	existing := &domain.Workout{
		ID:        primitive.NewObjectID(),
		Name:      "Old",
		CreatedBy: f.coach.ID,
		SessionID: &sessionID,
		Order:     2,
	}
	update := &domain.Workout{ID: existing.ID, Name: "New"}

	f.workoutRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	f.workoutRepo.On("Update", mock.Anything, update).Return(nil)
	f.workoutRepo.On("GetByID", mock.Anything, existing.ID).Return(update, nil).Once()

	_, err := f.svc.Update(context.Background(), f.coach, update)

	require.NoError(t, err)
	require.NotNil(t, update.SessionID)
	assert.Equal(t, sessionID, *update.SessionID)
	assert.Equal(t, 2, update.Order)
}

func TestWorkoutTotalDuration(t *testing.T) {
	f := newWorkoutFixture()
	workout := &domain.Workout{
		ID:        primitive.NewObjectID(),
		CreatedBy: f.coach.ID,
		Exercises: []domain.WorkoutExercise{
			{Sets: intPtr(3), Duration: intPtr(45), Rest: intPtr(60)},
		},
	}

	f.workoutRepo.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)

	minutes, err := f.svc.TotalDuration(context.Background(), f.coach, workout.ID)

	require.NoError(t, err)
	// 135s work plus 120s rest rounds up to 5 minutes.
	assert.Equal(t, 5, minutes)
}

func intPtr(v int) *int { return &v }
