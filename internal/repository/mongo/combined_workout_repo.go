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

const combinedWorkoutCollectionName = "combined_workouts"

// mongoCombinedWorkoutRepository implements repository.CombinedWorkoutRepository.
type mongoCombinedWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoCombinedWorkoutRepository creates a new CombinedWorkout repository.
func NewMongoCombinedWorkoutRepository(db *mongo.Database) repository.CombinedWorkoutRepository {
	return &mongoCombinedWorkoutRepository{
		collection: db.Collection(combinedWorkoutCollectionName),
	}
}

func (r *mongoCombinedWorkoutRepository) Create(ctx context.Context, cw *domain.CombinedWorkout) (primitive.ObjectID, error) {
	if cw.CreatedBy == primitive.NilObjectID || cw.Name == "" {
		return primitive.NilObjectID, errors.New("combined workout requires createdBy and name")
	}
	cw.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	cw.CreatedAt = now
	cw.UpdatedAt = now
	cw.IsActive = true

	result, err := r.collection.InsertOne(ctx, cw)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted combined workout ID")
	}
	return insertedID, nil
}

func (r *mongoCombinedWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CombinedWorkout, error) {
	var cw domain.CombinedWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cw, nil
}

// GetBySessionID returns the session's combined workouts sorted ascending
// by order, with _id breaking ties in insertion order.
func (r *mongoCombinedWorkoutRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.CombinedWorkout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var combined []domain.CombinedWorkout
	if err := cursor.All(ctx, &combined); err != nil {
		return nil, err
	}
	return combined, nil
}

func (r *mongoCombinedWorkoutRepository) MaxOrderInSession(ctx context.Context, sessionID primitive.ObjectID) (int, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})
	var cw domain.CombinedWorkout
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}, findOptions).Decode(&cw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return cw.Order, nil
}

func (r *mongoCombinedWorkoutRepository) List(ctx context.Context, visibleTo *primitive.ObjectID) ([]domain.CombinedWorkout, error) {
	query := bson.M{"isActive": true}
	if visibleTo != nil {
		query["$or"] = bson.A{
			bson.M{"isPublic": true},
			bson.M{"createdBy": *visibleTo},
			bson.M{"assignedTo": *visibleTo},
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var combined []domain.CombinedWorkout
	if err := cursor.All(ctx, &combined); err != nil {
		return nil, err
	}
	return combined, nil
}

func (r *mongoCombinedWorkoutRepository) Update(ctx context.Context, cw *domain.CombinedWorkout) error {
	if cw.ID == primitive.NilObjectID {
		return errors.New("combined workout ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":        cw.Name,
			"description": cw.Description,
			"workouts":    cw.Workouts,
			"assignedTo":  cw.AssignedTo,
			"isActive":    cw.IsActive,
			"isPublic":    cw.IsPublic,
			"tags":        cw.Tags,
			"notes":       cw.Notes,
			"startDate":   cw.StartDate,
			"endDate":     cw.EndDate,
			"sessionId":   cw.SessionID,
			"order":       cw.Order,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": cw.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateOrder sets the order field directly with no renumbering of
// siblings.
func (r *mongoCombinedWorkoutRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	update := bson.M{"$set": bson.M{"order": order, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCombinedWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCombinedWorkoutRepository) DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}

// EnsureCombinedWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureCombinedWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignedTo", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
