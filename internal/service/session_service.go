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
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionAccess       = errors.New("not allowed to access this session")
	ErrNotInSession        = errors.New("item does not belong to this session")
	ErrAlreadyInSession    = errors.New("item already belongs to a session")
	ErrInvalidOrder        = errors.New("order must be a positive integer")
)

// CascadePolicy controls what is deleted along with a session.
type CascadePolicy string

const (
	// CascadeNone detaches nothing; attached items keep their sessionId.
	CascadeNone CascadePolicy = "none"
	// CascadeWorkouts deletes the session's workouts but leaves combined
	// workouts in place.
	CascadeWorkouts CascadePolicy = "workouts"
	// CascadeAll deletes both the session's workouts and its combined
	// workouts.
	CascadeAll CascadePolicy = "all"
)

// SessionDetail is a session with its ordered contents. Workouts and
// combined workouts each carry their own independent order sequence.
type SessionDetail struct {
	Session          *domain.Session          `json:"session"`
	Workouts         []domain.Workout         `json:"workouts"`
	CombinedWorkouts []domain.CombinedWorkout `json:"combinedWorkouts"`
}

// SessionService manages sessions and the order of their contents.
type SessionService interface {
	Create(ctx context.Context, actor Actor, session *domain.Session) (*domain.Session, error)
	GetDetail(ctx context.Context, actor Actor, id primitive.ObjectID) (*SessionDetail, error)
	List(ctx context.Context, actor Actor) ([]domain.Session, error)
	Update(ctx context.Context, actor Actor, session *domain.Session) (*domain.Session, error)
	Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error

	// AddWorkout attaches a workout to the session at the next free order
	// position (highest current order plus one, or 1 in an empty session).
	AddWorkout(ctx context.Context, actor Actor, sessionID, workoutID primitive.ObjectID) (*domain.Workout, error)
	RemoveWorkout(ctx context.Context, actor Actor, sessionID, workoutID primitive.ObjectID) error
	// UpdateWorkoutOrder sets the workout's order directly. Other items are
	// never renumbered; duplicate positions are allowed and reads resolve
	// ties by insertion order.
	UpdateWorkoutOrder(ctx context.Context, actor Actor, sessionID, workoutID primitive.ObjectID, order int) error

	AddCombinedWorkout(ctx context.Context, actor Actor, sessionID, combinedID primitive.ObjectID) (*domain.CombinedWorkout, error)
	RemoveCombinedWorkout(ctx context.Context, actor Actor, sessionID, combinedID primitive.ObjectID) error
	UpdateCombinedWorkoutOrder(ctx context.Context, actor Actor, sessionID, combinedID primitive.ObjectID, order int) error
}

type sessionService struct {
	sessionRepo  repository.SessionRepository
	workoutRepo  repository.WorkoutRepository
	combinedRepo repository.CombinedWorkoutRepository
	notifier     Notifier
	cascade      CascadePolicy
}

// NewSessionService creates a new instance of sessionService. The cascade
// policy decides what Delete removes along with the session; CascadeAll is
// the default for unknown values.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	workoutRepo repository.WorkoutRepository,
	combinedRepo repository.CombinedWorkoutRepository,
	notifier Notifier,
	cascade CascadePolicy,
) SessionService {
	switch cascade {
	case CascadeNone, CascadeWorkouts, CascadeAll:
	default:
		cascade = CascadeAll
	}
	return &sessionService{
		sessionRepo:  sessionRepo,
		workoutRepo:  workoutRepo,
		combinedRepo: combinedRepo,
		notifier:     notifier,
		cascade:      cascade,
	}
}

// manageable loads the session and checks mutate permission.
func (s *sessionService) manageable(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !actor.canManage(session.CreatedBy) {
		return nil, ErrSessionAccess
	}
	return session, nil
}

func (s *sessionService) Create(ctx context.Context, actor Actor, session *domain.Session) (*domain.Session, error) {
	if !actor.IsCoach() && !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	session.Name = strings.TrimSpace(session.Name)
	if session.Name == "" {
		return nil, ErrValidation
	}

	session.CreatedBy = actor.ID
	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id

	if len(session.AssignedTo) > 0 {
		notifications := make([]domain.Notification, 0, len(session.AssignedTo))
		for _, recipient := range session.AssignedTo {
			notifications = append(notifications, domain.Notification{
				Recipient: recipient,
				Sender:    &actor.ID,
				Type:      domain.NotifySessionAssigned,
				Title:     "New session assigned",
				Message:   "You have been assigned the session " + session.Name,
				Entity:    entityRef("session", session.ID),
			})
		}
		s.notifier.Emit(ctx, notifications...)
	}

	return session, nil
}

func (s *sessionService) GetDetail(ctx context.Context, actor Actor, id primitive.ObjectID) (*SessionDetail, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if !actor.IsCoach() && !actor.IsAdmin() && !session.IsPublic && session.CreatedBy != actor.ID {
		assigned := false
		for _, uid := range session.AssignedTo {
			if uid == actor.ID {
				assigned = true
				break
			}
		}
		if !assigned {
			return nil, ErrSessionAccess
		}
	}

	// Both lists come back sorted ascending by order.
	workouts, err := s.workoutRepo.GetBySessionID(ctx, id)
	if err != nil {
		return nil, err
	}
	combined, err := s.combinedRepo.GetBySessionID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &SessionDetail{
		Session:          session,
		Workouts:         workouts,
		CombinedWorkouts: combined,
	}, nil
}

func (s *sessionService) List(ctx context.Context, actor Actor) ([]domain.Session, error) {
	if actor.IsCoach() || actor.IsAdmin() {
		return s.sessionRepo.List(ctx, nil)
	}
	return s.sessionRepo.List(ctx, &actor.ID)
}

func (s *sessionService) Update(ctx context.Context, actor Actor, session *domain.Session) (*domain.Session, error) {
	existing, err := s.manageable(ctx, actor, session.ID)
	if err != nil {
		return nil, err
	}
	session.Name = strings.TrimSpace(session.Name)
	if session.Name == "" {
		return nil, ErrValidation
	}
	session.CreatedBy = existing.CreatedBy

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, session.ID)
}

func (s *sessionService) Delete(ctx context.Context, actor Actor, id primitive.ObjectID) error {
	if _, err := s.manageable(ctx, actor, id); err != nil {
		return err
	}

	switch s.cascade {
	case CascadeAll:
		if err := s.workoutRepo.DeleteBySessionID(ctx, id); err != nil {
			return err
		}
		if err := s.combinedRepo.DeleteBySessionID(ctx, id); err != nil {
			return err
		}
	case CascadeWorkouts:
		if err := s.workoutRepo.DeleteBySessionID(ctx, id); err != nil {
			return err
		}
	}

	return s.sessionRepo.Delete(ctx, id)
}

func (s *sessionService) AddWorkout(ctx context.Context, actor Actor, sessionID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	if _, err := s.manageable(ctx, actor, sessionID); err != nil {
		return nil, err
	}
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.SessionID != nil {
		return nil, ErrAlreadyInSession
	}

	maxOrder, err := s.workoutRepo.MaxOrderInSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	workout.SessionID = &sessionID
	workout.Order = maxOrder + 1
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *sessionService) RemoveWorkout(ctx context.Context, actor Actor, sessionID, workoutID primitive.ObjectID) error {
	if _, err := s.manageable(ctx, actor, sessionID); err != nil {
		return err
	}
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if workout.SessionID == nil || *workout.SessionID != sessionID {
		return ErrNotInSession
	}

	workout.SessionID = nil
	workout.Order = 0
	return s.workoutRepo.Update(ctx, workout)
}

func (s *sessionService) UpdateWorkoutOrder(ctx context.Context, actor Actor, sessionID, workoutID primitive.ObjectID, order int) error {
	if order < 1 {
		return ErrInvalidOrder
	}
	if _, err := s.manageable(ctx, actor, sessionID); err != nil {
		return err
	}
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if workout.SessionID == nil || *workout.SessionID != sessionID {
		return ErrNotInSession
	}
	return s.workoutRepo.UpdateOrder(ctx, workoutID, order)
}

func (s *sessionService) AddCombinedWorkout(ctx context.Context, actor Actor, sessionID, combinedID primitive.ObjectID) (*domain.CombinedWorkout, error) {
	if _, err := s.manageable(ctx, actor, sessionID); err != nil {
		return nil, err
	}
	cw, err := s.combinedRepo.GetByID(ctx, combinedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCombinedNotFound
		}
		return nil, err
	}
	if cw.SessionID != nil {
		return nil, ErrAlreadyInSession
	}

	// Combined workouts order independently of plain workouts in the same
	// session; both sequences may use the same positions.
	maxOrder, err := s.combinedRepo.MaxOrderInSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cw.SessionID = &sessionID
	cw.Order = maxOrder + 1
	if err := s.combinedRepo.Update(ctx, cw); err != nil {
		return nil, err
	}
	return cw, nil
}

func (s *sessionService) RemoveCombinedWorkout(ctx context.Context, actor Actor, sessionID, combinedID primitive.ObjectID) error {
	if _, err := s.manageable(ctx, actor, sessionID); err != nil {
		return err
	}
	cw, err := s.combinedRepo.GetByID(ctx, combinedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCombinedNotFound
		}
		return err
	}
	if cw.SessionID == nil || *cw.SessionID != sessionID {
		return ErrNotInSession
	}

	cw.SessionID = nil
	cw.Order = 0
	return s.combinedRepo.Update(ctx, cw)
}

func (s *sessionService) UpdateCombinedWorkoutOrder(ctx context.Context, actor Actor, sessionID, combinedID primitive.ObjectID, order int) error {
	if order < 1 {
		return ErrInvalidOrder
	}
	if _, err := s.manageable(ctx, actor, sessionID); err != nil {
		return err
	}
	cw, err := s.combinedRepo.GetByID(ctx, combinedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCombinedNotFound
		}
		return err
	}
	if cw.SessionID == nil || *cw.SessionID != sessionID {
		return ErrNotInSession
	}
	return s.combinedRepo.UpdateOrder(ctx, combinedID, order)
}
