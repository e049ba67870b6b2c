package api

import (
	"net/http"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

type SaveExerciseRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Category    string `json:"category" binding:"omitempty,max=50"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	GifURL      string `json:"gifUrl" binding:"omitempty,url"`
}

type LibraryExerciseResponse struct {
	ID          string    `json:"id"`
	CoachID     string    `json:"coachId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	GifURL      string    `json:"gifUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to its DTO.
func MapExerciseToResponse(ex *domain.Exercise) LibraryExerciseResponse {
	if ex == nil {
		return LibraryExerciseResponse{}
	}
	return LibraryExerciseResponse{
		ID:          ex.ID.Hex(),
		CoachID:     ex.CoachID.Hex(),
		Name:        ex.Name,
		Description: ex.Description,
		Category:    ex.Category,
		Difficulty:  string(ex.Difficulty),
		GifURL:      ex.GifURL,
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
}

func (r SaveExerciseRequest) toDomain() *domain.Exercise {
	return &domain.Exercise{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Difficulty:  domain.Difficulty(r.Difficulty),
		GifURL:      r.GifURL,
	}
}

// --- Handler Methods ---

// CreateExercise handles POST /exercises. Coach and admin only.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req SaveExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	created, err := h.exerciseService.Create(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(created))
}

// GetExercise handles GET /exercises/:id.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// ListMyExercises handles GET /exercises for the authenticated coach.
func (h *ExerciseHandler) ListMyExercises(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	exercises, err := h.exerciseService.ListByCoach(c.Request.Context(), actor, actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]LibraryExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateExercise handles PUT /exercises/:id.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	var req SaveExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exercise := req.toDomain()
	exercise.ID = id

	updated, err := h.exerciseService.Update(c.Request.Context(), actor, exercise)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(updated))
}

// DeleteExercise handles DELETE /exercises/:id.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
