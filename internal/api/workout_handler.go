package api

import (
	"net/http"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

// WorkoutExerciseRequest is one exercise slot. Either the inline exercise
// block or an exerciseId reference must be present.
type WorkoutExerciseRequest struct {
	Exercise   *ExerciseDetailRequest `json:"exercise"`
	ExerciseID string                 `json:"exerciseId" binding:"omitempty,len=24"`

	Sets        *int     `json:"sets" binding:"omitempty,min=1"`
	Repetitions *int     `json:"repetitions" binding:"omitempty,min=1"`
	Weight      *float64 `json:"weight" binding:"omitempty,min=0"`
	Duration    *int     `json:"duration" binding:"omitempty,min=1"` // seconds
	Rest        *int     `json:"rest" binding:"omitempty,min=0"`     // seconds
	Notes       string   `json:"notes" binding:"omitempty,max=500"`
	Order       int      `json:"order" binding:"omitempty,min=1"`
}

type ExerciseDetailRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Category    string `json:"category" binding:"omitempty,max=50"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	GifURL      string `json:"gifUrl" binding:"omitempty,url"`
}

type SaveWorkoutRequest struct {
	Name        string                   `json:"name" binding:"required,max=100"`
	Description string                   `json:"description" binding:"omitempty,max=500"`
	Type        string                   `json:"type" binding:"required,oneof=strength cardio flexibility mixed custom"`
	Difficulty  string                   `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	Duration    *int                     `json:"duration" binding:"omitempty,min=1"` // seconds
	Exercises   []WorkoutExerciseRequest `json:"exercises" binding:"omitempty,dive"`
	GifURL      string                   `json:"gifUrl" binding:"omitempty,url"`
	IsPublic    bool                     `json:"isPublic"`
	AssignedTo  []string                 `json:"assignedTo" binding:"omitempty,dive,len=24"`
	Tags        []string                 `json:"tags" binding:"omitempty,dive,max=30"`
}

type WorkoutResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Type        string                   `json:"type"`
	Difficulty  string                   `json:"difficulty"`
	Duration    *int                     `json:"duration,omitempty"`
	Exercises   []domain.WorkoutExercise `json:"exercises"`
	GifURL      string                   `json:"gifUrl,omitempty"`
	IsPublic    bool                     `json:"isPublic"`
	CreatedBy   string                   `json:"createdBy"`
	AssignedTo  []string                 `json:"assignedTo,omitempty"`
	Tags        []string                 `json:"tags,omitempty"`
	SessionID   string                   `json:"sessionId,omitempty"`
	Order       int                      `json:"order,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	resp := WorkoutResponse{
		ID:          w.ID.Hex(),
		Name:        w.Name,
		Description: w.Description,
		Type:        string(w.Type),
		Difficulty:  string(w.Difficulty),
		Duration:    w.Duration,
		Exercises:   w.Exercises,
		GifURL:      w.GifURL,
		IsPublic:    w.IsPublic,
		CreatedBy:   w.CreatedBy.Hex(),
		Tags:        w.Tags,
		Order:       w.Order,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if w.SessionID != nil {
		resp.SessionID = w.SessionID.Hex()
	}
	for _, id := range w.AssignedTo {
		resp.AssignedTo = append(resp.AssignedTo, id.Hex())
	}
	return resp
}

// MapWorkoutsToResponse converts a slice of workouts to DTOs.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r SaveWorkoutRequest) toDomain() (*domain.Workout, error) {
	assignedTo, err := parseObjectIDs(r.AssignedTo)
	if err != nil {
		return nil, err
	}

	exercises := make([]domain.WorkoutExercise, 0, len(r.Exercises))
	for _, e := range r.Exercises {
		entry := domain.WorkoutExercise{
			Sets:        e.Sets,
			Repetitions: e.Repetitions,
			Weight:      e.Weight,
			Duration:    e.Duration,
			Rest:        e.Rest,
			Notes:       e.Notes,
			Order:       e.Order,
		}
		if e.ExerciseID != "" {
			id, err := primitive.ObjectIDFromHex(e.ExerciseID)
			if err != nil {
				return nil, err
			}
			entry.ExerciseID = &id
		} else if e.Exercise != nil {
			entry.Exercise = domain.ExerciseDetail{
				Name:        e.Exercise.Name,
				Description: e.Exercise.Description,
				Category:    e.Exercise.Category,
				Difficulty:  domain.Difficulty(e.Exercise.Difficulty),
				GifURL:      e.Exercise.GifURL,
			}
		}
		exercises = append(exercises, entry)
	}

	return &domain.Workout{
		Name:        r.Name,
		Description: r.Description,
		Type:        domain.WorkoutType(r.Type),
		Difficulty:  domain.Difficulty(r.Difficulty),
		Duration:    r.Duration,
		Exercises:   exercises,
		GifURL:      r.GifURL,
		IsPublic:    r.IsPublic,
		AssignedTo:  assignedTo,
		Tags:        r.Tags,
	}, nil
}

// --- Handler Methods ---

// CreateWorkout handles POST /workouts.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req SaveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ObjectID in request.")
		return
	}

	created, err := h.workoutService.Create(c.Request.Context(), actor, workout)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(created))
}

// GetWorkout handles GET /workouts/:id.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	workout, err := h.workoutService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// ListWorkouts handles GET /workouts with optional type/difficulty filters.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var filter repository.WorkoutFilter
	if raw := c.Query("type"); raw != "" {
		t := domain.WorkoutType(raw)
		filter.Type = &t
	}
	if raw := c.Query("difficulty"); raw != "" {
		d := domain.Difficulty(raw)
		filter.Difficulty = &d
	}

	workouts, err := h.workoutService.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// UpdateWorkout handles PUT /workouts/:id.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	var req SaveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ObjectID in request.")
		return
	}
	workout.ID = id

	updated, err := h.workoutService.Update(c.Request.Context(), actor, workout)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(updated))
}

// DeleteWorkout handles DELETE /workouts/:id.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetWorkoutDuration handles GET /workouts/:id/duration.
func (h *WorkoutHandler) GetWorkoutDuration(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	duration, err := h.workoutService.TotalDuration(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workoutId": id.Hex(), "totalDuration": duration})
}
