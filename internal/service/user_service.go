package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotACoach    = errors.New("target user is not a coach")
)

// UserService manages accounts and the coach/client relationship.
type UserService interface {
	GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.User, error)
	// AssignCoach links a user to a coach and records the reverse edge on
	// the coach's client list. Coach and admin only.
	AssignCoach(ctx context.Context, actor Actor, userID, coachID primitive.ObjectID) error
	// Clients returns the users managed by the given coach.
	Clients(ctx context.Context, actor Actor, coachID primitive.ObjectID) ([]domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	notifier Notifier
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, notifier Notifier) UserService {
	return &userService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *userService) GetByID(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.User, error) {
	if actor.ID != id && !actor.IsCoach() && !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) AssignCoach(ctx context.Context, actor Actor, userID, coachID primitive.ObjectID) error {
	if !actor.IsCoach() && !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	// A coach may only assign clients to themselves.
	if actor.IsCoach() && !actor.IsAdmin() && coachID != actor.ID {
		return ErrPermissionDenied
	}

	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !coach.IsCoach() {
		return ErrNotACoach
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.SetAssignedCoach(ctx, userID, coachID); err != nil {
		return err
	}
	if err := s.userRepo.AddClientIDToCoach(ctx, coachID, userID); err != nil {
		return err
	}

	s.notifier.Emit(ctx, domain.Notification{
		Recipient: userID,
		Sender:    &actor.ID,
		Type:      domain.NotifyAssignedCoach,
		Title:     "Coach assigned",
		Message:   coach.FullName() + " is now your coach",
		Entity:    entityRef("user", coachID),
	})
	return nil
}

func (s *userService) Clients(ctx context.Context, actor Actor, coachID primitive.ObjectID) ([]domain.User, error) {
	if !actor.IsAdmin() && !(actor.IsCoach() && actor.ID == coachID) {
		return nil, ErrPermissionDenied
	}
	clients, err := s.userRepo.GetClientsByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].PasswordHash = ""
	}
	return clients, nil
}
