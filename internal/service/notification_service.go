package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationService exposes the read side of notifications. All
// operations are scoped to the actor's own inbox.
type NotificationService interface {
	List(ctx context.Context, actor Actor, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, actor Actor) error
	UnreadCount(ctx context.Context, actor Actor) (int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) List(ctx context.Context, actor Actor, unreadOnly bool) ([]domain.Notification, error) {
	return s.notificationRepo.ListByRecipient(ctx, actor.ID, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, actor Actor, id primitive.ObjectID) (*domain.Notification, error) {
	n, err := s.notificationRepo.MarkRead(ctx, id, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor Actor) error {
	return s.notificationRepo.MarkAllRead(ctx, actor.ID)
}

func (s *notificationService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, actor.ID)
}
