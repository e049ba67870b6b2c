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
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrWorkoutAccess     = errors.New("not allowed to access this workout")
	ErrUnknownExerciseID = errors.New("workout references an unknown exercise")
)

// WorkoutService manages workouts and their duration queries.
type WorkoutService interface {
	Create(ctx context.Context, actor Actor, workout *domain.Workout) (*domain.Workout, error)
	GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Workout, error)
	List(ctx context.Context, actor Actor, filter repository.WorkoutFilter) ([]domain.Workout, error)
	Update(ctx context.Context, actor Actor, workout *domain.Workout) (*domain.Workout, error)
	Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error
	// TotalDuration computes the workout's duration on demand. An explicit
	// duration wins over the per-exercise aggregation.
	TotalDuration(ctx context.Context, actor Actor, id primitive.ObjectID) (int, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	notifier     Notifier
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	notifier Notifier,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		notifier:     notifier,
	}
}

// validateExerciseRefs checks that every referenced exercise slot resolves
// against the library. Embedded slots need a non-empty inline name.
func (s *workoutService) validateExerciseRefs(ctx context.Context, workout *domain.Workout) error {
	var refs []primitive.ObjectID
	for _, e := range workout.Exercises {
		if e.IsReferenced() {
			refs = append(refs, *e.ExerciseID)
			continue
		}
		if strings.TrimSpace(e.Exercise.Name) == "" {
			return ErrValidation
		}
	}
	if len(refs) == 0 {
		return nil
	}
	found, err := s.exerciseRepo.GetByIDs(ctx, refs)
	if err != nil {
		return err
	}
	known := make(map[primitive.ObjectID]struct{}, len(found))
	for _, ex := range found {
		known[ex.ID] = struct{}{}
	}
	for _, id := range refs {
		if _, ok := known[id]; !ok {
			return ErrUnknownExerciseID
		}
	}
	return nil
}

// resolveExerciseNames fills ResolvedName on referenced slots so callers see
// a name regardless of storage strategy. Missing library entries leave the
// name empty rather than failing the read.
func (s *workoutService) resolveExerciseNames(ctx context.Context, workout *domain.Workout) {
	var refs []primitive.ObjectID
	for _, e := range workout.Exercises {
		if e.IsReferenced() {
			refs = append(refs, *e.ExerciseID)
		}
	}
	if len(refs) == 0 {
		return
	}
	found, err := s.exerciseRepo.GetByIDs(ctx, refs)
	if err != nil {
		return
	}
	names := make(map[primitive.ObjectID]string, len(found))
	for _, ex := range found {
		names[ex.ID] = ex.Name
	}
	for i := range workout.Exercises {
		if workout.Exercises[i].IsReferenced() {
			workout.Exercises[i].ResolvedName = names[*workout.Exercises[i].ExerciseID]
		}
	}
}

func (s *workoutService) Create(ctx context.Context, actor Actor, workout *domain.Workout) (*domain.Workout, error) {
	if !actor.IsCoach() && !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	workout.Name = strings.TrimSpace(workout.Name)
	if workout.Name == "" {
		return nil, ErrValidation
	}
	if err := s.validateExerciseRefs(ctx, workout); err != nil {
		return nil, err
	}

	workout.CreatedBy = actor.ID
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id

	if len(workout.AssignedTo) > 0 {
		notifications := make([]domain.Notification, 0, len(workout.AssignedTo))
		for _, recipient := range workout.AssignedTo {
			notifications = append(notifications, domain.Notification{
				Recipient: recipient,
				Sender:    &actor.ID,
				Type:      domain.NotifyWorkoutAction,
				Title:     "New workout assigned",
				Message:   "You have been assigned the workout " + workout.Name,
				Entity:    entityRef("workout", workout.ID),
			})
		}
		s.notifier.Emit(ctx, notifications...)
	}

	return workout, nil
}

func (s *workoutService) GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !actor.IsCoach() && !actor.IsAdmin() && !workout.VisibleTo(actor.ID) {
		return nil, ErrWorkoutAccess
	}
	s.resolveExerciseNames(ctx, workout)
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, actor Actor, filter repository.WorkoutFilter) ([]domain.Workout, error) {
	// Plain users only see public workouts plus their own.
	if !actor.IsCoach() && !actor.IsAdmin() {
		filter.VisibleTo = &actor.ID
	}
	return s.workoutRepo.List(ctx, filter)
}

func (s *workoutService) Update(ctx context.Context, actor Actor, workout *domain.Workout) (*domain.Workout, error) {
	existing, err := s.workoutRepo.GetByID(ctx, workout.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !actor.canManage(existing.CreatedBy) {
		return nil, ErrWorkoutAccess
	}
	workout.Name = strings.TrimSpace(workout.Name)
	if workout.Name == "" {
		return nil, ErrValidation
	}
	if err := s.validateExerciseRefs(ctx, workout); err != nil {
		return nil, err
	}

	// Creator, session membership and order are not client-editable here.
	workout.CreatedBy = existing.CreatedBy
	workout.SessionID = existing.SessionID
	workout.Order = existing.Order

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, actor, workout.ID)
}

func (s *workoutService) Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error {
	existing, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if !actor.canManage(existing.CreatedBy) {
		return ErrWorkoutAccess
	}
	return s.workoutRepo.Delete(ctx, id)
}

func (s *workoutService) TotalDuration(ctx context.Context, actor Actor, id primitive.ObjectID) (int, error) {
	workout, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return 0, err
	}
	return workout.CalculateTotalDuration(), nil
}
