package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a library entry that referenced workout slots resolve
// against. Coaches own the entries they create.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID `bson:"coachId" json:"coachId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Difficulty  Difficulty         `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	GifURL      string             `bson:"gifUrl,omitempty" json:"gifUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Detail converts a library entry into the inline form used by embedded
// workout slots.
func (e *Exercise) Detail() ExerciseDetail {
	return ExerciseDetail{
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,
		Difficulty:  e.Difficulty,
		GifURL:      e.GifURL,
	}
}
