package mocks

import (
	"context"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetAssignedCoach(ctx context.Context, userID, coachID primitive.ObjectID) error {
	args := m.Called(ctx, userID, coachID)
	return args.Error(0)
}

func (m *MockUserRepository) AddClientIDToCoach(ctx context.Context, coachID, userID primitive.ObjectID) error {
	args := m.Called(ctx, coachID, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetClientsByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	args := m.Called(ctx, coachID)
	return args.Get(0).([]domain.User), args.Error(1)
}

// Shared MockQuestionnaireRepository
type MockQuestionnaireRepository struct {
	mock.Mock
}

func (m *MockQuestionnaireRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.HealthQuestionnaire, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthQuestionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepository) Upsert(ctx context.Context, q *domain.HealthQuestionnaire) (*domain.HealthQuestionnaire, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthQuestionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepository) List(ctx context.Context, filter repository.QuestionnaireFilter) ([]domain.HealthQuestionnaire, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.HealthQuestionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Shared MockWorkoutRepository
type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	args := m.Called(ctx, workout)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) MaxOrderInSession(ctx context.Context, sessionID primitive.ObjectID) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockWorkoutRepository) List(ctx context.Context, filter repository.WorkoutFilter) ([]domain.Workout, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	args := m.Called(ctx, workout)
	return args.Error(0)
}

func (m *MockWorkoutRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	args := m.Called(ctx, id, order)
	return args.Error(0)
}

func (m *MockWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkoutRepository) DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// Shared MockCombinedWorkoutRepository
type MockCombinedWorkoutRepository struct {
	mock.Mock
}

func (m *MockCombinedWorkoutRepository) Create(ctx context.Context, cw *domain.CombinedWorkout) (primitive.ObjectID, error) {
	args := m.Called(ctx, cw)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockCombinedWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CombinedWorkout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CombinedWorkout), args.Error(1)
}

func (m *MockCombinedWorkoutRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.CombinedWorkout, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.CombinedWorkout), args.Error(1)
}

func (m *MockCombinedWorkoutRepository) MaxOrderInSession(ctx context.Context, sessionID primitive.ObjectID) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockCombinedWorkoutRepository) List(ctx context.Context, visibleTo *primitive.ObjectID) ([]domain.CombinedWorkout, error) {
	args := m.Called(ctx, visibleTo)
	return args.Get(0).([]domain.CombinedWorkout), args.Error(1)
}

func (m *MockCombinedWorkoutRepository) Update(ctx context.Context, cw *domain.CombinedWorkout) error {
	args := m.Called(ctx, cw)
	return args.Error(0)
}

func (m *MockCombinedWorkoutRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	args := m.Called(ctx, id, order)
	return args.Error(0)
}

func (m *MockCombinedWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCombinedWorkoutRepository) DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// Shared MockSessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context, visibleTo *primitive.ObjectID) ([]domain.Session, error) {
	args := m.Called(ctx, visibleTo)
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Shared MockMealRepository
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error) {
	args := m.Called(ctx, meal)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockMealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meal), args.Error(1)
}

func (m *MockMealRepository) List(ctx context.Context, createdBy *primitive.ObjectID) ([]domain.Meal, error) {
	args := m.Called(ctx, createdBy)
	return args.Get(0).([]domain.Meal), args.Error(1)
}

func (m *MockMealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *MockMealRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Shared MockExerciseRepository
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	args := m.Called(ctx, exercise)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	args := m.Called(ctx, coachID)
	return args.Get(0).([]domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	args := m.Called(ctx, exercise)
	return args.Error(0)
}

func (m *MockExerciseRepository) Delete(ctx context.Context, id, coachID primitive.ObjectID) error {
	args := m.Called(ctx, id, coachID)
	return args.Error(0)
}

// Shared MockNotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) InsertMany(ctx context.Context, notifications []domain.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, recipient primitive.ObjectID, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, recipient, unreadOnly)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*domain.Notification, error) {
	args := m.Called(ctx, id, recipient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipient primitive.ObjectID) error {
	args := m.Called(ctx, recipient)
	return args.Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipient primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, recipient)
	return args.Get(0).(int64), args.Error(1)
}
