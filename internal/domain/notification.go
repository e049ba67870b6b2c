package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType tags the event a notification reports.
type NotificationType string

const (
	NotifyInfo                 NotificationType = "info"
	NotifyHealthUpdated        NotificationType = "health_questions_updated"
	NotifySessionAssigned      NotificationType = "session_assigned"
	NotifyWorkoutAction        NotificationType = "workout_action"
	NotifyProgramAction        NotificationType = "program_action"
	NotifyMealAction           NotificationType = "meal_action"
	NotifyAssignedCoach        NotificationType = "assigned_coach"
)

// EntityRef points a notification at the record it is about.
type EntityRef struct {
	EntityType string `bson:"entityType,omitempty" json:"entityType,omitempty"`
	EntityID   string `bson:"entityId,omitempty" json:"entityId,omitempty"`
}

// Notification is an intent record written as a best-effort side effect of
// state changes. Failures to write one never fail the primary operation.
type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Recipient primitive.ObjectID  `bson:"recipient" json:"recipient"`
	Sender    *primitive.ObjectID `bson:"sender,omitempty" json:"sender,omitempty"`
	Type      NotificationType    `bson:"type" json:"type"`
	Title     string              `bson:"title" json:"title"`
	Message   string              `bson:"message" json:"message"`
	Entity    EntityRef           `bson:"entity,omitempty" json:"entity"`

	IsRead bool       `bson:"isRead" json:"isRead"`
	ReadAt *time.Time `bson:"readAt,omitempty" json:"readAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
