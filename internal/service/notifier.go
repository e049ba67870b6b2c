package service

import (
	"context"
	"log"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notifier records notification intents as a best-effort side effect.
// Emit never returns an error: a failed write is logged and swallowed so
// the primary operation it decorates cannot fail because of it.
type Notifier interface {
	Emit(ctx context.Context, notifications ...domain.Notification)
}

type storeNotifier struct {
	repo repository.NotificationRepository
}

// NewNotifier creates a Notifier backed by the notification store.
func NewNotifier(repo repository.NotificationRepository) Notifier {
	return &storeNotifier{repo: repo}
}

func (n *storeNotifier) Emit(ctx context.Context, notifications ...domain.Notification) {
	if len(notifications) == 0 {
		return
	}
	if err := n.repo.InsertMany(ctx, notifications); err != nil {
		log.Printf("WARN: Failed to record %d notification(s): %v", len(notifications), err)
	}
}

// entityRef builds the reference stored on a notification.
func entityRef(entityType string, id primitive.ObjectID) domain.EntityRef {
	return domain.EntityRef{EntityType: entityType, EntityID: id.Hex()}
}
