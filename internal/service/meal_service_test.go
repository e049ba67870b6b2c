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

type mealFixture struct {
	mealRepo *mocks.MockMealRepository
	notifier *recordingNotifier
	svc      MealService
	user     Actor
	coach    Actor
}

func newMealFixture() *mealFixture {
	f := &mealFixture{
		mealRepo: new(mocks.MockMealRepository),
		notifier: &recordingNotifier{},
	}
	f.svc = NewMealService(f.mealRepo, f.notifier)
	f.user = Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}
	f.coach = Actor{ID: primitive.NewObjectID(), Role: domain.RoleCoach}
	return f
}

func TestMealCreateStartsPending(t *testing.T) {
	f := newMealFixture()
	reviewer := primitive.NewObjectID()
	meal := &domain.Meal{
		Name:       " Overnight oats ",
		Type:       domain.MealBreakfast,
		Status:     domain.MealApproved, // client-supplied status is ignored
		ReviewedBy: &reviewer,
	}

	f.mealRepo.On("Create", mock.Anything, meal).Return(primitive.NewObjectID(), nil)

	got, err := f.svc.Create(context.Background(), f.user, meal)

	require.NoError(t, err)
	assert.Equal(t, "Overnight oats", got.Name)
	assert.Equal(t, domain.MealPending, got.Status)
	assert.Nil(t, got.ReviewedBy)
	assert.Equal(t, f.user.ID, got.CreatedBy)
	assert.Empty(t, f.notifier.emitted)
}

func TestMealCreateNotifiesAssignee(t *testing.T) {
	f := newMealFixture()
	assignee := primitive.NewObjectID()
	meal := &domain.Meal{
		Name:       "Recovery shake",
		Type:       domain.MealSnack,
		AssignedTo: &assignee,
	}

	f.mealRepo.On("Create", mock.Anything, meal).Return(primitive.NewObjectID(), nil)

	_, err := f.svc.Create(context.Background(), f.coach, meal)

	require.NoError(t, err)
	require.Len(t, f.notifier.emitted, 1)
	assert.Equal(t, assignee, f.notifier.emitted[0].Recipient)
	assert.Equal(t, domain.NotifyMealAction, f.notifier.emitted[0].Type)
}

func TestMealReviewApprove(t *testing.T) {
	f := newMealFixture()
	meal := &domain.Meal{
		ID:        primitive.NewObjectID(),
		Name:      "Salmon bowl",
		Status:    domain.MealPending,
		CreatedBy: f.user.ID,
	}

	f.mealRepo.On("GetByID", mock.Anything, meal.ID).Return(meal, nil)
	f.mealRepo.On("Update", mock.Anything, meal).Return(nil)

	got, err := f.svc.Review(context.Background(), f.coach, meal.ID, true, "  looks great  ")

	require.NoError(t, err)
	assert.Equal(t, domain.MealApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, f.coach.ID, *got.ReviewedBy)
	assert.Equal(t, "looks great", got.ReviewNotes)

	require.Len(t, f.notifier.emitted, 1)
	n := f.notifier.emitted[0]
	assert.Equal(t, f.user.ID, n.Recipient)
	assert.Equal(t, domain.NotifyMealAction, n.Type)
	assert.Equal(t, "Meal approved", n.Title)
}

func TestMealReviewReject(t *testing.T) {
	f := newMealFixture()
	meal := &domain.Meal{
		ID:        primitive.NewObjectID(),
		Name:      "Triple burger",
		Status:    domain.MealPending,
		CreatedBy: f.user.ID,
	}

	f.mealRepo.On("GetByID", mock.Anything, meal.ID).Return(meal, nil)
	f.mealRepo.On("Update", mock.Anything, meal).Return(nil)

	got, err := f.svc.Review(context.Background(), f.coach, meal.ID, false, "too much saturated fat")

	require.NoError(t, err)
	assert.Equal(t, domain.MealRejected, got.Status)
	require.Len(t, f.notifier.emitted, 1)
	assert.Equal(t, "Meal rejected", f.notifier.emitted[0].Title)
}

func TestMealReviewRejectsNonPending(t *testing.T) {
	for _, status := range []domain.MealStatus{domain.MealApproved, domain.MealRejected} {
		t.Run(string(status), func(t *testing.T) {
			f := newMealFixture()
			meal := &domain.Meal{ID: primitive.NewObjectID(), Status: status}

			f.mealRepo.On("GetByID", mock.Anything, meal.ID).Return(meal, nil)

			_, err := f.svc.Review(context.Background(), f.coach, meal.ID, true, "")

			assert.ErrorIs(t, err, ErrInvalidMealState)
			f.mealRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestMealReviewRequiresCoach(t *testing.T) {
	f := newMealFixture()

	_, err := f.svc.Review(context.Background(), f.user, primitive.NewObjectID(), true, "")

	assert.ErrorIs(t, err, ErrPermissionDenied)
	f.mealRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestMealUpdateResetsReview(t *testing.T) {
	f := newMealFixture()
	reviewer := primitive.NewObjectID()
	existing := &domain.Meal{
		ID:          primitive.NewObjectID(),
		Name:        "Salad",
		Status:      domain.MealApproved,
		ReviewedBy:  &reviewer,
		ReviewNotes: "approved earlier",
		CreatedBy:   f.user.ID,
		IsActive:    true,
	}
	update := &domain.Meal{
		ID:   existing.ID,
		Name: "Salad with dressing",
		Items: []domain.MealItem{
			{Name: "Greens", Quantity: 100, Unit: "g"},
		},
	}

	f.mealRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	f.mealRepo.On("Update", mock.Anything, update).Return(nil)
	f.mealRepo.On("GetByID", mock.Anything, existing.ID).Return(update, nil).Once()

	got, err := f.svc.Update(context.Background(), f.user, update)

	require.NoError(t, err)
	assert.Equal(t, domain.MealPending, got.Status)
	assert.Nil(t, got.ReviewedBy)
	assert.Empty(t, got.ReviewNotes)
	assert.Equal(t, f.user.ID, got.CreatedBy)
}

func TestMealVisibility(t *testing.T) {
	f := newMealFixture()
	assignee := primitive.NewObjectID()
	meal := &domain.Meal{
		ID:         primitive.NewObjectID(),
		CreatedBy:  primitive.NewObjectID(),
		AssignedTo: &assignee,
	}

	f.mealRepo.On("GetByID", mock.Anything, meal.ID).Return(meal, nil)

	t.Run("assignee can read", func(t *testing.T) {
		_, err := f.svc.GetByID(context.Background(), Actor{ID: assignee, Role: domain.RoleUser}, meal.ID)
		assert.NoError(t, err)
	})

	t.Run("stranger cannot", func(t *testing.T) {
		_, err := f.svc.GetByID(context.Background(), Actor{ID: primitive.NewObjectID(), Role: domain.RoleUser}, meal.ID)
		assert.ErrorIs(t, err, ErrMealAccess)
	})
}

func TestMealGetByIDNotFound(t *testing.T) {
	f := newMealFixture()
	id := primitive.NewObjectID()

	f.mealRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := f.svc.GetByID(context.Background(), f.user, id)

	assert.ErrorIs(t, err, ErrMealNotFound)
}
