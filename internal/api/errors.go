package api

import (
	"errors"
	"net/http"

	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinel errors onto HTTP statuses.
// Anything unrecognized becomes a 500 with a generic message so internal
// details never leak to clients.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrQuestionnaireAccess),
		errors.Is(err, service.ErrWorkoutAccess),
		errors.Is(err, service.ErrSessionAccess),
		errors.Is(err, service.ErrCombinedAccess),
		errors.Is(err, service.ErrMealAccess):
		abortWithError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrCombinedNotFound),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyWorkoutList),
		errors.Is(err, service.ErrUnknownWorkoutID),
		errors.Is(err, service.ErrUnknownExerciseID),
		errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, service.ErrNotInSession),
		errors.Is(err, service.ErrAlreadyInSession),
		errors.Is(err, service.ErrInvalidMealState),
		errors.Is(err, service.ErrNotACoach),
		errors.Is(err, service.ErrInvalidRole):
		abortWithError(c, http.StatusBadRequest, err.Error())

	default:
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
