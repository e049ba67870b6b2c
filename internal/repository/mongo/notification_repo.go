package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const notificationCollectionName = "notifications"

// mongoNotificationRepository implements repository.NotificationRepository.
type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new Notification repository.
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &mongoNotificationRepository{
		collection: db.Collection(notificationCollectionName),
	}
}

func (r *mongoNotificationRepository) InsertMany(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(notifications))
	for i := range notifications {
		n := notifications[i]
		n.ID = primitive.NewObjectID()
		n.IsRead = false
		n.ReadAt = nil
		n.CreatedAt = now
		n.UpdatedAt = now
		docs = append(docs, n)
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *mongoNotificationRepository) ListByRecipient(ctx context.Context, recipient primitive.ObjectID, unreadOnly bool) ([]domain.Notification, error) {
	query := bson.M{"recipient": recipient}
	if unreadOnly {
		query["isRead"] = false
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []domain.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*domain.Notification, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"isRead":    true,
			"readAt":    now,
			"updatedAt": now,
		},
	}

	// Scoped to the recipient so users cannot mark another's notifications.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var notification domain.Notification
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id, "recipient": recipient}, update, opts).Decode(&notification)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *mongoNotificationRepository) MarkAllRead(ctx context.Context, recipient primitive.ObjectID) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"isRead":    true,
			"readAt":    now,
			"updatedAt": now,
		},
	}
	_, err := r.collection.UpdateMany(ctx, bson.M{"recipient": recipient, "isRead": false}, update)
	return err
}

func (r *mongoNotificationRepository) CountUnread(ctx context.Context, recipient primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient": recipient, "isRead": false})
}

// EnsureNotificationIndexes creates necessary indexes. Call during startup.
func EnsureNotificationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipient", Value: 1}, {Key: "isRead", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
