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

const mealCollectionName = "meals"

// mongoMealRepository implements repository.MealRepository.
type mongoMealRepository struct {
	collection *mongo.Collection
}

// NewMongoMealRepository creates a new Meal repository.
func NewMongoMealRepository(db *mongo.Database) repository.MealRepository {
	return &mongoMealRepository{
		collection: db.Collection(mealCollectionName),
	}
}

// Totals are recomputed before every write, but only when the item list is
// non-empty. An empty list keeps whatever totals the caller supplied.
func applyMealTotals(meal *domain.Meal) {
	if len(meal.Items) > 0 {
		meal.CalculateTotals()
	}
}

func (r *mongoMealRepository) Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error) {
	if meal.CreatedBy == primitive.NilObjectID || meal.Name == "" {
		return primitive.NilObjectID, errors.New("meal requires createdBy and name")
	}
	applyMealTotals(meal)

	meal.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	meal.CreatedAt = now
	meal.UpdatedAt = now
	meal.IsActive = true
	if meal.Status == "" {
		meal.Status = domain.MealPending
	}

	result, err := r.collection.InsertOne(ctx, meal)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted meal ID")
	}
	return insertedID, nil
}

func (r *mongoMealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	var meal domain.Meal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mongoMealRepository) List(ctx context.Context, createdBy *primitive.ObjectID) ([]domain.Meal, error) {
	query := bson.M{"isActive": true}
	if createdBy != nil {
		query["$or"] = bson.A{
			bson.M{"createdBy": *createdBy},
			bson.M{"assignedTo": *createdBy},
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meals []domain.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mongoMealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == primitive.NilObjectID {
		return errors.New("meal ID is required for update")
	}
	applyMealTotals(meal)

	update := bson.M{
		"$set": bson.M{
			"name":          meal.Name,
			"description":   meal.Description,
			"type":          meal.Type,
			"items":         meal.Items,
			"totalCalories": meal.TotalCalories,
			"totalProtein":  meal.TotalProtein,
			"totalCarbs":    meal.TotalCarbs,
			"totalFat":      meal.TotalFat,
			"totalFiber":    meal.TotalFiber,
			"imageUrl":      meal.ImageURL,
			"status":        meal.Status,
			"reviewedBy":    meal.ReviewedBy,
			"reviewNotes":   meal.ReviewNotes,
			"isActive":      meal.IsActive,
			"assignedTo":    meal.AssignedTo,
			"tags":          meal.Tags,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": meal.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoMealRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMealIndexes creates necessary indexes. Call during startup.
func EnsureMealIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignedTo", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
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
