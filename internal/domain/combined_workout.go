package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CombinedWorkout is a named ordered bundle of existing workouts. Every
// referenced workout must resolve at create/update time; references are
// not re-checked afterwards, so a workout deleted later leaves a dangling
// id that read paths filter out.
type CombinedWorkout struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Workouts    []primitive.ObjectID `bson:"workouts" json:"workouts"`

	CreatedBy  primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo []primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`

	IsActive bool     `bson:"isActive" json:"isActive"`
	IsPublic bool     `bson:"isPublic" json:"isPublic"`
	Tags     []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Notes    string   `bson:"notes,omitempty" json:"notes,omitempty"`

	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`

	SessionID *primitive.ObjectID `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	Order     int                 `bson:"order,omitempty" json:"order,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutCount is derived from the reference list on every read and is
// never stored.
func (c *CombinedWorkout) WorkoutCount() int {
	return len(c.Workouts)
}
