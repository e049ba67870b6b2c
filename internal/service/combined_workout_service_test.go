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

type combinedFixture struct {
	combinedRepo *mocks.MockCombinedWorkoutRepository
	workoutRepo  *mocks.MockWorkoutRepository
	notifier     *recordingNotifier
	svc          CombinedWorkoutService
	coach        Actor
}

func newCombinedFixture() *combinedFixture {
	f := &combinedFixture{
		combinedRepo: new(mocks.MockCombinedWorkoutRepository),
		workoutRepo:  new(mocks.MockWorkoutRepository),
		notifier:     &recordingNotifier{},
	}
	f.svc = NewCombinedWorkoutService(f.combinedRepo, f.workoutRepo, f.notifier)
	f.coach = Actor{ID: primitive.NewObjectID(), Role: domain.RoleCoach}
	return f
}

func TestCombinedCreateValidatesAllReferences(t *testing.T) {
	f := newCombinedFixture()
	w1 := domain.Workout{ID: primitive.NewObjectID(), Name: "A"}
	w2 := domain.Workout{ID: primitive.NewObjectID(), Name: "B"}
	missing := primitive.NewObjectID()

	cw := &domain.CombinedWorkout{
		Name:     "Full body circuit",
		Workouts: []primitive.ObjectID{w1.ID, missing, w2.ID},
	}

	// Two of three ids resolve; the whole create must fail.
	f.workoutRepo.On("GetByIDs", mock.Anything, cw.Workouts).Return([]domain.Workout{w1, w2}, nil)

	_, err := f.svc.Create(context.Background(), f.coach, cw)

	assert.ErrorIs(t, err, ErrUnknownWorkoutID)
	f.combinedRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.notifier.emitted)
}

func TestCombinedCreateRejectsEmptyWorkoutList(t *testing.T) {
	f := newCombinedFixture()
	cw := &domain.CombinedWorkout{Name: "Empty"}

	_, err := f.svc.Create(context.Background(), f.coach, cw)

	assert.ErrorIs(t, err, ErrEmptyWorkoutList)
	f.workoutRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestCombinedCreateSucceedsWhenAllResolve(t *testing.T) {
	f := newCombinedFixture()
	w1 := domain.Workout{ID: primitive.NewObjectID()}
	w2 := domain.Workout{ID: primitive.NewObjectID()}
	assignee := primitive.NewObjectID()

	cw := &domain.CombinedWorkout{
		Name:       "  HIIT block ",
		Workouts:   []primitive.ObjectID{w1.ID, w2.ID},
		AssignedTo: []primitive.ObjectID{assignee},
	}

	f.workoutRepo.On("GetByIDs", mock.Anything, cw.Workouts).Return([]domain.Workout{w1, w2}, nil)
	f.combinedRepo.On("Create", mock.Anything, cw).Return(primitive.NewObjectID(), nil)

	got, err := f.svc.Create(context.Background(), f.coach, cw)

	require.NoError(t, err)
	assert.Equal(t, "HIIT block", got.Name)
	assert.Equal(t, f.coach.ID, got.CreatedBy)
	require.Len(t, f.notifier.emitted, 1)
	assert.Equal(t, domain.NotifyProgramAction, f.notifier.emitted[0].Type)
	assert.Equal(t, assignee, f.notifier.emitted[0].Recipient)
}

func TestCombinedCreateRequiresCoach(t *testing.T) {
	f := newCombinedFixture()
	user := Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}

	_, err := f.svc.Create(context.Background(), user, &domain.CombinedWorkout{Name: "x"})

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCombinedGetByIDDropsDanglingRefs(t *testing.T) {
	f := newCombinedFixture()
	w1 := domain.Workout{ID: primitive.NewObjectID(), Name: "Warmup"}
	w3 := domain.Workout{ID: primitive.NewObjectID(), Name: "Cooldown"}
	deleted := primitive.NewObjectID()

	cw := &domain.CombinedWorkout{
		ID:        primitive.NewObjectID(),
		Name:      "Morning routine",
		CreatedBy: f.coach.ID,
		Workouts:  []primitive.ObjectID{w1.ID, deleted, w3.ID},
	}

	f.combinedRepo.On("GetByID", mock.Anything, cw.ID).Return(cw, nil)
	f.workoutRepo.On("GetByIDs", mock.Anything, []primitive.ObjectID{w1.ID, deleted, w3.ID}).
		Return([]domain.Workout{w1, w3}, nil)

	detail, err := f.svc.GetByID(context.Background(), f.coach, cw.ID)

	require.NoError(t, err)
	// The deleted member disappears from both lists; the survivors keep
	// their reference order.
	assert.Equal(t, []primitive.ObjectID{w1.ID, w3.ID}, detail.CombinedWorkout.Workouts)
	require.Len(t, detail.Workouts, 2)
	assert.Equal(t, "Warmup", detail.Workouts[0].Name)
	assert.Equal(t, "Cooldown", detail.Workouts[1].Name)
	assert.Equal(t, 2, detail.WorkoutCount)
}

func TestCombinedUpdateRetainsOmittedFields(t *testing.T) {
	f := newCombinedFixture()
	w := domain.Workout{ID: primitive.NewObjectID()}
	assignee := primitive.NewObjectID()

	existing := &domain.CombinedWorkout{
		ID:          primitive.NewObjectID(),
		Name:        "Old name",
		Description: "three rounds, minimal rest",
		CreatedBy:   f.coach.ID,
		Workouts:    []primitive.ObjectID{w.ID},
		AssignedTo:  []primitive.ObjectID{assignee},
		Tags:        []string{"conditioning"},
	}
	newName := "New name"

	f.combinedRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.combinedRepo.On("Update", mock.Anything, existing).Return(nil)

	got, err := f.svc.Update(context.Background(), f.coach, existing.ID, CombinedWorkoutPatch{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "New name", got.Name)
	assert.Equal(t, "three rounds, minimal rest", got.Description)
	assert.Equal(t, []primitive.ObjectID{w.ID}, got.Workouts)
	assert.Equal(t, []primitive.ObjectID{assignee}, got.AssignedTo)
	assert.Equal(t, []string{"conditioning"}, got.Tags)
	// No workout list supplied means no reference re-validation.
	f.workoutRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestCombinedUpdateValidatesSuppliedWorkoutList(t *testing.T) {
	f := newCombinedFixture()
	w := domain.Workout{ID: primitive.NewObjectID()}
	missing := primitive.NewObjectID()

	existing := &domain.CombinedWorkout{
		ID:        primitive.NewObjectID(),
		Name:      "Circuit",
		CreatedBy: f.coach.ID,
		Workouts:  []primitive.ObjectID{w.ID},
	}
	patch := CombinedWorkoutPatch{Workouts: []primitive.ObjectID{w.ID, missing}}

	f.combinedRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.workoutRepo.On("GetByIDs", mock.Anything, patch.Workouts).Return([]domain.Workout{w}, nil)

	_, err := f.svc.Update(context.Background(), f.coach, existing.ID, patch)

	assert.ErrorIs(t, err, ErrUnknownWorkoutID)
	f.combinedRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	// The stored list is untouched on failure.
	assert.Equal(t, []primitive.ObjectID{w.ID}, existing.Workouts)
}

func TestCombinedUpdatePreservesOwnershipAndPlacement(t *testing.T) {
	f := newCombinedFixture()
	owner := primitive.NewObjectID()
	sessionID := primitive.NewObjectID()
	w := domain.Workout{ID: primitive.NewObjectID()}

	existing := &domain.CombinedWorkout{
		ID:        primitive.NewObjectID(),
		Name:      "Old name",
		CreatedBy: owner,
		SessionID: &sessionID,
		Order:     4,
		Workouts:  []primitive.ObjectID{w.ID},
	}
	newName := "New name"

	f.combinedRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.combinedRepo.On("Update", mock.Anything, existing).Return(nil)

	got, err := f.svc.Update(context.Background(), f.coach, existing.ID, CombinedWorkoutPatch{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, owner, got.CreatedBy)
	require.NotNil(t, got.SessionID)
	assert.Equal(t, sessionID, *got.SessionID)
	assert.Equal(t, 4, got.Order)
}

func TestCombinedUpdateRejectsBlankName(t *testing.T) {
	f := newCombinedFixture()
	existing := &domain.CombinedWorkout{
		ID:        primitive.NewObjectID(),
		Name:      "Keep",
		CreatedBy: f.coach.ID,
	}
	blank := "   "

	f.combinedRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err := f.svc.Update(context.Background(), f.coach, existing.ID, CombinedWorkoutPatch{Name: &blank})

	assert.ErrorIs(t, err, ErrValidation)
	f.combinedRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCombinedVisibility(t *testing.T) {
	f := newCombinedFixture()
	stranger := Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}
	cw := &domain.CombinedWorkout{
		ID:        primitive.NewObjectID(),
		CreatedBy: f.coach.ID,
	}

	f.combinedRepo.On("GetByID", mock.Anything, cw.ID).Return(cw, nil)

	_, err := f.svc.GetByID(context.Background(), stranger, cw.ID)

	assert.ErrorIs(t, err, ErrCombinedAccess)
	f.workoutRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}
