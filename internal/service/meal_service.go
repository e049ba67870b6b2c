package service

import (
	"context"
	"errors"
	"strings"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrMealNotFound     = errors.New("meal not found")
	ErrMealAccess       = errors.New("not allowed to access this meal")
	ErrInvalidMealState = errors.New("meal is not pending review")
)

// MealService manages meals and their coach review workflow.
type MealService interface {
	Create(ctx context.Context, actor Actor, meal *domain.Meal) (*domain.Meal, error)
	GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Meal, error)
	List(ctx context.Context, actor Actor) ([]domain.Meal, error)
	Update(ctx context.Context, actor Actor, meal *domain.Meal) (*domain.Meal, error)
	Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error
	// Review approves or rejects a pending meal. Coach and admin only.
	Review(ctx context.Context, actor Actor, id primitive.ObjectID, approve bool, notes string) (*domain.Meal, error)
}

type mealService struct {
	mealRepo repository.MealRepository
	notifier Notifier
}

// NewMealService creates a new instance of mealService.
func NewMealService(mealRepo repository.MealRepository, notifier Notifier) MealService {
	return &mealService{
		mealRepo: mealRepo,
		notifier: notifier,
	}
}

func (s *mealService) Create(ctx context.Context, actor Actor, meal *domain.Meal) (*domain.Meal, error) {
	meal.Name = strings.TrimSpace(meal.Name)
	if meal.Name == "" {
		return nil, ErrValidation
	}

	meal.CreatedBy = actor.ID
	meal.Status = domain.MealPending
	meal.ReviewedBy = nil
	meal.ReviewNotes = ""

	id, err := s.mealRepo.Create(ctx, meal)
	if err != nil {
		return nil, err
	}
	meal.ID = id

	if meal.AssignedTo != nil && *meal.AssignedTo != actor.ID {
		s.notifier.Emit(ctx, domain.Notification{
			Recipient: *meal.AssignedTo,
			Sender:    &actor.ID,
			Type:      domain.NotifyMealAction,
			Title:     "New meal assigned",
			Message:   "You have been assigned the meal " + meal.Name,
			Entity:    entityRef("meal", meal.ID),
		})
	}

	return meal, nil
}

func (s *mealService) visible(actor Actor, meal *domain.Meal) bool {
	if actor.IsCoach() || actor.IsAdmin() || meal.CreatedBy == actor.ID {
		return true
	}
	return meal.AssignedTo != nil && *meal.AssignedTo == actor.ID
}

func (s *mealService) GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Meal, error) {
	meal, err := s.mealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if !s.visible(actor, meal) {
		return nil, ErrMealAccess
	}
	return meal, nil
}

func (s *mealService) List(ctx context.Context, actor Actor) ([]domain.Meal, error) {
	if actor.IsCoach() || actor.IsAdmin() {
		return s.mealRepo.List(ctx, nil)
	}
	return s.mealRepo.List(ctx, &actor.ID)
}

func (s *mealService) Update(ctx context.Context, actor Actor, meal *domain.Meal) (*domain.Meal, error) {
	existing, err := s.mealRepo.GetByID(ctx, meal.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if !actor.canManage(existing.CreatedBy) {
		return nil, ErrMealAccess
	}
	meal.Name = strings.TrimSpace(meal.Name)
	if meal.Name == "" {
		return nil, ErrValidation
	}

	// Editing the content sends the meal back through review.
	meal.CreatedBy = existing.CreatedBy
	meal.Status = domain.MealPending
	meal.ReviewedBy = nil
	meal.ReviewNotes = ""
	meal.IsActive = existing.IsActive

	if err := s.mealRepo.Update(ctx, meal); err != nil {
		return nil, err
	}
	return s.mealRepo.GetByID(ctx, meal.ID)
}

func (s *mealService) Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error {
	existing, err := s.mealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMealNotFound
		}
		return err
	}
	if !actor.canManage(existing.CreatedBy) {
		return ErrMealAccess
	}
	return s.mealRepo.Delete(ctx, id)
}

func (s *mealService) Review(ctx context.Context, actor Actor, id primitive.ObjectID, approve bool, notes string) (*domain.Meal, error) {
	if !actor.IsCoach() && !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	meal, err := s.mealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if meal.Status != domain.MealPending {
		return nil, ErrInvalidMealState
	}

	if approve {
		meal.Status = domain.MealApproved
	} else {
		meal.Status = domain.MealRejected
	}
	meal.ReviewedBy = &actor.ID
	meal.ReviewNotes = strings.TrimSpace(notes)

	if err := s.mealRepo.Update(ctx, meal); err != nil {
		return nil, err
	}

	title := "Meal approved"
	if !approve {
		title = "Meal rejected"
	}
	s.notifier.Emit(ctx, domain.Notification{
		Recipient: meal.CreatedBy,
		Sender:    &actor.ID,
		Type:      domain.NotifyMealAction,
		Title:     title,
		Message:   "Your meal " + meal.Name + " was reviewed",
		Entity:    entityRef("meal", meal.ID),
	})

	return meal, nil
}
