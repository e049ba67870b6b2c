package service

import (
	"context"
	"errors"
	"testing"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recordingNotifier captures emitted notifications for assertions.
type recordingNotifier struct {
	emitted []domain.Notification
}

func (n *recordingNotifier) Emit(_ context.Context, notifications ...domain.Notification) {
	n.emitted = append(n.emitted, notifications...)
}

func TestNotifierEmitStoresNotifications(t *testing.T) {
	repo := new(mocks.MockNotificationRepository)
	repo.On("InsertMany", mock.Anything, mock.AnythingOfType("[]domain.Notification")).Return(nil)

	notifier := NewNotifier(repo)
	notifier.Emit(context.Background(), domain.Notification{
		Recipient: primitive.NewObjectID(),
		Type:      domain.NotifyInfo,
		Title:     "hello",
	})

	repo.AssertExpectations(t)
}

func TestNotifierEmitSwallowsStoreFailure(t *testing.T) {
	repo := new(mocks.MockNotificationRepository)
	repo.On("InsertMany", mock.Anything, mock.AnythingOfType("[]domain.Notification")).
		Return(errors.New("connection reset"))

	notifier := NewNotifier(repo)

	// Must not panic or surface the error to the caller.
	assert.NotPanics(t, func() {
		notifier.Emit(context.Background(), domain.Notification{
			Recipient: primitive.NewObjectID(),
			Type:      domain.NotifyInfo,
		})
	})
	repo.AssertExpectations(t)
}

func TestNotifierEmitSkipsEmptyBatch(t *testing.T) {
	repo := new(mocks.MockNotificationRepository)

	notifier := NewNotifier(repo)
	notifier.Emit(context.Background())

	repo.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}
