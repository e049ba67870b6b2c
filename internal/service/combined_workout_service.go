package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCombinedNotFound = errors.New("combined workout not found")
	ErrCombinedAccess   = errors.New("not allowed to access this combined workout")
	ErrEmptyWorkoutList = errors.New("combined workout requires at least one workout")
	ErrUnknownWorkoutID = errors.New("combined workout references an unknown workout")
)

// CombinedWorkoutDetail is a combined workout with its member workouts
// resolved. Dangling references are dropped from both lists, so
// WorkoutCount reflects only the workouts that still exist.
type CombinedWorkoutDetail struct {
	CombinedWorkout *domain.CombinedWorkout `json:"combinedWorkout"`
	Workouts        []domain.Workout        `json:"resolvedWorkouts"`
	WorkoutCount    int                     `json:"workoutCount"`
}

// CombinedWorkoutPatch carries a partial update. Nil fields keep the
// stored value; a supplied workout list replaces the old one and is
// validated as a unit.
type CombinedWorkoutPatch struct {
	Name        *string
	Description *string
	Workouts    []primitive.ObjectID
	IsPublic    *bool
	AssignedTo  []primitive.ObjectID
	Tags        []string
	Notes       *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// CombinedWorkoutService manages combined workouts, validating their
// workout references as a unit on every write.
type CombinedWorkoutService interface {
	Create(ctx context.Context, actor Actor, cw *domain.CombinedWorkout) (*domain.CombinedWorkout, error)
	GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*CombinedWorkoutDetail, error)
	List(ctx context.Context, actor Actor) ([]domain.CombinedWorkout, error)
	// Update applies the supplied fields only; omitted fields keep their
	// stored values.
	Update(ctx context.Context, actor Actor, id primitive.ObjectID, patch CombinedWorkoutPatch) (*domain.CombinedWorkout, error)
	Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error
}

type combinedWorkoutService struct {
	combinedRepo repository.CombinedWorkoutRepository
	workoutRepo  repository.WorkoutRepository
	notifier     Notifier
}

// NewCombinedWorkoutService creates a new instance of combinedWorkoutService.
func NewCombinedWorkoutService(
	combinedRepo repository.CombinedWorkoutRepository,
	workoutRepo repository.WorkoutRepository,
	notifier Notifier,
) CombinedWorkoutService {
	return &combinedWorkoutService{
		combinedRepo: combinedRepo,
		workoutRepo:  workoutRepo,
		notifier:     notifier,
	}
}

// validateWorkoutRefs checks that every referenced workout exists. One
// missing id fails the whole list; nothing is partially accepted.
func (s *combinedWorkoutService) validateWorkoutRefs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return ErrEmptyWorkoutList
	}
	found, err := s.workoutRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[primitive.ObjectID]struct{}, len(found))
	for _, w := range found {
		known[w.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return ErrUnknownWorkoutID
		}
	}
	return nil
}

func (s *combinedWorkoutService) Create(ctx context.Context, actor Actor, cw *domain.CombinedWorkout) (*domain.CombinedWorkout, error) {
	if !actor.IsCoach() && !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	cw.Name = strings.TrimSpace(cw.Name)
	if cw.Name == "" {
		return nil, ErrValidation
	}
	if err := s.validateWorkoutRefs(ctx, cw.Workouts); err != nil {
		return nil, err
	}

	cw.CreatedBy = actor.ID
	id, err := s.combinedRepo.Create(ctx, cw)
	if err != nil {
		return nil, err
	}
	cw.ID = id

	if len(cw.AssignedTo) > 0 {
		notifications := make([]domain.Notification, 0, len(cw.AssignedTo))
		for _, recipient := range cw.AssignedTo {
			notifications = append(notifications, domain.Notification{
				Recipient: recipient,
				Sender:    &actor.ID,
				Type:      domain.NotifyProgramAction,
				Title:     "New combined workout assigned",
				Message:   "You have been assigned the combined workout " + cw.Name,
				Entity:    entityRef("combinedWorkout", cw.ID),
			})
		}
		s.notifier.Emit(ctx, notifications...)
	}

	return cw, nil
}

func (s *combinedWorkoutService) visible(actor Actor, cw *domain.CombinedWorkout) bool {
	if actor.IsCoach() || actor.IsAdmin() || cw.IsPublic || cw.CreatedBy == actor.ID {
		return true
	}
	for _, uid := range cw.AssignedTo {
		if uid == actor.ID {
			return true
		}
	}
	return false
}

func (s *combinedWorkoutService) GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*CombinedWorkoutDetail, error) {
	cw, err := s.combinedRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCombinedNotFound
		}
		return nil, err
	}
	if !s.visible(actor, cw) {
		return nil, ErrCombinedAccess
	}

	// References are only validated at write time. A member workout deleted
	// since then leaves a dangling id; reads drop it instead of failing.
	resolved, err := s.workoutRepo.GetByIDs(ctx, cw.Workouts)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.Workout, len(resolved))
	for _, w := range resolved {
		byID[w.ID] = w
	}

	live := make([]primitive.ObjectID, 0, len(cw.Workouts))
	ordered := make([]domain.Workout, 0, len(cw.Workouts))
	for _, wid := range cw.Workouts {
		if w, ok := byID[wid]; ok {
			live = append(live, wid)
			ordered = append(ordered, w)
		}
	}
	cw.Workouts = live

	return &CombinedWorkoutDetail{
		CombinedWorkout: cw,
		Workouts:        ordered,
		WorkoutCount:    cw.WorkoutCount(),
	}, nil
}

func (s *combinedWorkoutService) List(ctx context.Context, actor Actor) ([]domain.CombinedWorkout, error) {
	if actor.IsCoach() || actor.IsAdmin() {
		return s.combinedRepo.List(ctx, nil)
	}
	return s.combinedRepo.List(ctx, &actor.ID)
}

func (s *combinedWorkoutService) Update(ctx context.Context, actor Actor, id primitive.ObjectID, patch CombinedWorkoutPatch) (*domain.CombinedWorkout, error) {
	existing, err := s.combinedRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCombinedNotFound
		}
		return nil, err
	}
	if !actor.canManage(existing.CreatedBy) {
		return nil, ErrCombinedAccess
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrValidation
		}
		existing.Name = name
	}
	// A supplied list is validated in full; an omitted one is not
	// re-checked, matching create-time-only reference validation.
	if patch.Workouts != nil {
		if err := s.validateWorkoutRefs(ctx, patch.Workouts); err != nil {
			return nil, err
		}
		existing.Workouts = patch.Workouts
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.IsPublic != nil {
		existing.IsPublic = *patch.IsPublic
	}
	if patch.AssignedTo != nil {
		existing.AssignedTo = patch.AssignedTo
	}
	if patch.Tags != nil {
		existing.Tags = patch.Tags
	}
	if patch.Notes != nil {
		existing.Notes = *patch.Notes
	}
	if patch.StartDate != nil {
		existing.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		existing.EndDate = patch.EndDate
	}

	if err := s.combinedRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.combinedRepo.GetByID(ctx, id)
}

func (s *combinedWorkoutService) Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error {
	existing, err := s.combinedRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCombinedNotFound
		}
		return err
	}
	if !actor.canManage(existing.CreatedBy) {
		return ErrCombinedAccess
	}
	return s.combinedRepo.Delete(ctx, id)
}
