package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role distinguishes user permission tiers.
type Role string

const (
	RoleUser  Role = "user"
	RoleCoach Role = "coach"
	RoleAdmin Role = "admin"
)

// User is an account in the system. Regular users may have an assigned
// coach; coaches track the users they manage.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"` // unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         Role               `bson:"role" json:"role"`

	// User-side: the coach responsible for this account, if any.
	AssignedCoach *primitive.ObjectID `bson:"assignedCoach,omitempty" json:"assignedCoach,omitempty"`
	// Coach-side: the users this coach manages.
	ClientIDs []primitive.ObjectID `bson:"clientIds,omitempty" json:"clientIds,omitempty"`

	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins the first and last name for display and notifications.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) IsCoach() bool { return u.Role == RoleCoach }
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
