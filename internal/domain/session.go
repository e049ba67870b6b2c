package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session groups an ordered set of workouts and combined workouts for one
// training day. The session does not embed them; both are queried by
// their sessionId and carry their own order sequence.
type Session struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Duration    *int               `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Type        WorkoutType        `bson:"type" json:"type"`
	Difficulty  Difficulty         `bson:"difficulty" json:"difficulty"`

	IsActive bool `bson:"isActive" json:"isActive"`
	IsPublic bool `bson:"isPublic" json:"isPublic"`

	CreatedBy  primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo []primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Tags       []string             `bson:"tags,omitempty" json:"tags,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TotalDuration returns the explicit session duration, zero when unset.
func (s *Session) TotalDuration() int {
	if s.Duration == nil {
		return 0
	}
	return *s.Duration
}
