package service

import (
	"errors"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shared service-layer errors. Handlers map these onto HTTP statuses.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("resource not found")
	ErrValidation       = errors.New("validation failed")
)

// Actor identifies the authenticated caller of a service operation. It is
// built by the auth middleware from the verified JWT claims.
type Actor struct {
	ID   primitive.ObjectID
	Role domain.Role
}

func (a Actor) IsCoach() bool { return a.Role == domain.RoleCoach }
func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// canManage reports whether the actor may mutate a record created by
// createdBy. Owners always pass; coaches and admins pass for any record.
func (a Actor) canManage(createdBy primitive.ObjectID) bool {
	return a.ID == createdBy || a.IsCoach() || a.IsAdmin()
}
