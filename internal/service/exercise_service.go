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
	ErrExerciseNotFound = errors.New("exercise not found")
)

// ExerciseService manages the coach-owned exercise library.
type ExerciseService interface {
	Create(ctx context.Context, actor Actor, exercise *domain.Exercise) (*domain.Exercise, error)
	GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Exercise, error)
	ListByCoach(ctx context.Context, actor Actor, coachID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, actor Actor, exercise *domain.Exercise) (*domain.Exercise, error)
	Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) Create(ctx context.Context, actor Actor, exercise *domain.Exercise) (*domain.Exercise, error) {
	if !actor.IsCoach() && !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	exercise.Name = strings.TrimSpace(exercise.Name)
	if exercise.Name == "" {
		return nil, ErrValidation
	}

	exercise.CoachID = actor.ID
	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (s *exerciseService) GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListByCoach(ctx context.Context, actor Actor, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByCoachID(ctx, coachID)
}

func (s *exerciseService) Update(ctx context.Context, actor Actor, exercise *domain.Exercise) (*domain.Exercise, error) {
	existing, err := s.exerciseRepo.GetByID(ctx, exercise.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.CoachID != actor.ID && !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	exercise.Name = strings.TrimSpace(exercise.Name)
	if exercise.Name == "" {
		return nil, ErrValidation
	}

	exercise.CoachID = existing.CoachID
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exercise.ID)
}

func (s *exerciseService) Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error {
	existing, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if existing.CoachID != actor.ID && !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.exerciseRepo.Delete(ctx, id, existing.CoachID)
}
