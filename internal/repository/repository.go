package repository

import (
	"context"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines access to user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetAssignedCoach(ctx context.Context, userID, coachID primitive.ObjectID) error
	AddClientIDToCoach(ctx context.Context, coachID, userID primitive.ObjectID) error
	GetClientsByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)
}

// QuestionnaireFilter narrows coach/admin listings.
type QuestionnaireFilter struct {
	RiskLevel  *domain.RiskLevel
	IsComplete *bool
}

// QuestionnaireRepository stores health questionnaires, one per user.
// Every write path recomputes the derived fields first; upsert keys on
// userId so the one-per-user invariant holds at the store boundary.
type QuestionnaireRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.HealthQuestionnaire, error)
	Upsert(ctx context.Context, q *domain.HealthQuestionnaire) (*domain.HealthQuestionnaire, error)
	List(ctx context.Context, filter QuestionnaireFilter) ([]domain.HealthQuestionnaire, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// WorkoutFilter narrows workout listings.
type WorkoutFilter struct {
	Type       *domain.WorkoutType
	Difficulty *domain.Difficulty
	// VisibleTo restricts results to public workouts plus those created
	// by or assigned to this user.
	VisibleTo *primitive.ObjectID
}

// WorkoutRepository stores workouts. GetBySessionID returns documents
// sorted ascending by order (ties keep insertion order).
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Workout, error)
	GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.Workout, error)
	MaxOrderInSession(ctx context.Context, sessionID primitive.ObjectID) (int, error)
	List(ctx context.Context, filter WorkoutFilter) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error
}

// CombinedWorkoutRepository stores combined workouts with the same
// session-scoped ordering contract as WorkoutRepository.
type CombinedWorkoutRepository interface {
	Create(ctx context.Context, cw *domain.CombinedWorkout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CombinedWorkout, error)
	GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.CombinedWorkout, error)
	MaxOrderInSession(ctx context.Context, sessionID primitive.ObjectID) (int, error)
	List(ctx context.Context, visibleTo *primitive.ObjectID) ([]domain.CombinedWorkout, error)
	Update(ctx context.Context, cw *domain.CombinedWorkout) error
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error
}

// SessionRepository stores training sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error)
	List(ctx context.Context, visibleTo *primitive.ObjectID) ([]domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MealRepository stores meals. Implementations recompute macro totals
// before each write whenever the item list is non-empty.
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error)
	List(ctx context.Context, createdBy *primitive.ObjectID) ([]domain.Meal, error)
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository stores the exercise library that referenced workout
// entries resolve against.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
}

// NotificationRepository stores notification intents. InsertMany is the
// bulk path used by assignment fan-out.
type NotificationRepository interface {
	InsertMany(ctx context.Context, notifications []domain.Notification) error
	ListByRecipient(ctx context.Context, recipient primitive.ObjectID, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, recipient primitive.ObjectID) error
	CountUnread(ctx context.Context, recipient primitive.ObjectID) (int64, error)
}
