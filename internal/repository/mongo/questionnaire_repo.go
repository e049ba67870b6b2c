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

const questionnaireCollectionName = "questionnaires"

// mongoQuestionnaireRepository implements repository.QuestionnaireRepository.
type mongoQuestionnaireRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionnaireRepository creates a new questionnaire repository.
func NewMongoQuestionnaireRepository(db *mongo.Database) repository.QuestionnaireRepository {
	return &mongoQuestionnaireRepository{
		collection: db.Collection(questionnaireCollectionName),
	}
}

func (r *mongoQuestionnaireRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.HealthQuestionnaire, error) {
	var q domain.HealthQuestionnaire
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// Upsert writes the questionnaire keyed by userId, creating it when
// absent. The derived fields are recomputed here, unconditionally, so no
// caller can persist a questionnaire with a stale score, level or
// completeness flag.
func (r *mongoQuestionnaireRepository) Upsert(ctx context.Context, q *domain.HealthQuestionnaire) (*domain.HealthQuestionnaire, error) {
	if q.UserID == primitive.NilObjectID {
		return nil, errors.New("questionnaire requires userId")
	}

	q.Recalculate()

	now := time.Now().UTC()
	q.UpdatedAt = now

	set := bson.M{
		"bloodPressure":                  q.BloodPressure,
		"restingHeartRate":               q.RestingHeartRate,
		"cardioTest":                     q.CardioTest,
		"pushupsPerMinute":               q.PushupsPerMinute,
		"situpsPerMinute":                q.SitupsPerMinute,
		"stretching":                     q.Stretching,
		"bodyFatPercentage":              q.BodyFatPercentage,
		"bodyWeight":                     q.BodyWeight,
		"heartProblems":                  q.HeartProblems,
		"chestPainDuringExercise":        q.ChestPainDuringExercise,
		"chestPainLastMonth":             q.ChestPainLastMonth,
		"dizzinessOrFainting":            q.DizzinessOrFainting,
		"jointProblems":                  q.JointProblems,
		"bloodPressureOrHeartMedication": q.BloodPressureOrHeartMedication,
		"type1Diabetes":                  q.Type1Diabetes,
		"otherExerciseRestrictions":      q.OtherExerciseRestrictions,
		"hasAllergies":                   q.HasAllergies,
		"allergiesDetails":               q.AllergiesDetails,
		"isComplete":                     q.IsComplete,
		"riskScore":                      q.RiskScore,
		"riskLevel":                      q.RiskLevel,
		"lastUpdated":                    q.LastUpdated,
		"updatedAt":                      q.UpdatedAt,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"userId": q.UserID, "createdAt": now},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.HealthQuestionnaire
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": q.UserID}, update, opts).Decode(&saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *mongoQuestionnaireRepository) List(ctx context.Context, filter repository.QuestionnaireFilter) ([]domain.HealthQuestionnaire, error) {
	query := bson.M{}
	if filter.RiskLevel != nil {
		query["riskLevel"] = *filter.RiskLevel
	}
	if filter.IsComplete != nil {
		query["isComplete"] = *filter.IsComplete
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questionnaires []domain.HealthQuestionnaire
	if err := cursor.All(ctx, &questionnaires); err != nil {
		return nil, err
	}
	return questionnaires, nil
}

func (r *mongoQuestionnaireRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureQuestionnaireIndexes creates necessary indexes. Call during startup.
func EnsureQuestionnaireIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One questionnaire per user.
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "riskLevel", Value: 1}},
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
