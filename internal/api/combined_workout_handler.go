package api

import (
	"net/http"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CombinedWorkoutHandler holds the combined workout service dependency.
type CombinedWorkoutHandler struct {
	combinedService service.CombinedWorkoutService
}

// NewCombinedWorkoutHandler creates a new CombinedWorkoutHandler.
func NewCombinedWorkoutHandler(combinedService service.CombinedWorkoutService) *CombinedWorkoutHandler {
	return &CombinedWorkoutHandler{combinedService: combinedService}
}

// --- DTOs ---

type SaveCombinedWorkoutRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description" binding:"omitempty,max=500"`
	Workouts    []string   `json:"workouts" binding:"required,min=1,dive,len=24"`
	IsPublic    bool       `json:"isPublic"`
	AssignedTo  []string   `json:"assignedTo" binding:"omitempty,dive,len=24"`
	Tags        []string   `json:"tags" binding:"omitempty,dive,max=30"`
	Notes       string     `json:"notes" binding:"omitempty,max=1000"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// UpdateCombinedWorkoutRequest is the partial-update body. Omitted fields
// keep their stored values; a supplied workout list must still be non-empty.
type UpdateCombinedWorkoutRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	Workouts    []string   `json:"workouts" binding:"omitempty,min=1,dive,len=24"`
	IsPublic    *bool      `json:"isPublic"`
	AssignedTo  []string   `json:"assignedTo" binding:"omitempty,dive,len=24"`
	Tags        []string   `json:"tags" binding:"omitempty,dive,max=30"`
	Notes       *string    `json:"notes" binding:"omitempty,max=1000"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type CombinedWorkoutResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Workouts     []string   `json:"workouts"`
	WorkoutCount int        `json:"workoutCount"`
	IsPublic     bool       `json:"isPublic"`
	CreatedBy    string     `json:"createdBy"`
	AssignedTo   []string   `json:"assignedTo,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	SessionID    string     `json:"sessionId,omitempty"`
	Order        int        `json:"order,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CombinedWorkoutDetailResponse adds the resolved member workouts.
type CombinedWorkoutDetailResponse struct {
	CombinedWorkoutResponse
	ResolvedWorkouts []WorkoutResponse `json:"resolvedWorkouts"`
}

// MapCombinedWorkoutToResponse converts a domain.CombinedWorkout to its DTO.
// WorkoutCount is derived from the reference list, never read from storage.
func MapCombinedWorkoutToResponse(cw *domain.CombinedWorkout) CombinedWorkoutResponse {
	if cw == nil {
		return CombinedWorkoutResponse{}
	}
	resp := CombinedWorkoutResponse{
		ID:           cw.ID.Hex(),
		Name:         cw.Name,
		Description:  cw.Description,
		Workouts:     make([]string, 0, len(cw.Workouts)),
		WorkoutCount: cw.WorkoutCount(),
		IsPublic:     cw.IsPublic,
		CreatedBy:    cw.CreatedBy.Hex(),
		Tags:         cw.Tags,
		Notes:        cw.Notes,
		StartDate:    cw.StartDate,
		EndDate:      cw.EndDate,
		Order:        cw.Order,
		CreatedAt:    cw.CreatedAt,
		UpdatedAt:    cw.UpdatedAt,
	}
	for _, id := range cw.Workouts {
		resp.Workouts = append(resp.Workouts, id.Hex())
	}
	for _, id := range cw.AssignedTo {
		resp.AssignedTo = append(resp.AssignedTo, id.Hex())
	}
	if cw.SessionID != nil {
		resp.SessionID = cw.SessionID.Hex()
	}
	return resp
}

// MapCombinedWorkoutsToResponse converts a slice of combined workouts.
func MapCombinedWorkoutsToResponse(cws []domain.CombinedWorkout) []CombinedWorkoutResponse {
	responses := make([]CombinedWorkoutResponse, len(cws))
	for i := range cws {
		responses[i] = MapCombinedWorkoutToResponse(&cws[i])
	}
	return responses
}

func (r SaveCombinedWorkoutRequest) toDomain() (*domain.CombinedWorkout, error) {
	workouts, err := parseObjectIDs(r.Workouts)
	if err != nil {
		return nil, err
	}
	assignedTo, err := parseObjectIDs(r.AssignedTo)
	if err != nil {
		return nil, err
	}
	return &domain.CombinedWorkout{
		Name:        r.Name,
		Description: r.Description,
		Workouts:    workouts,
		IsPublic:    r.IsPublic,
		AssignedTo:  assignedTo,
		Tags:        r.Tags,
		Notes:       r.Notes,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}, nil
}

func (r UpdateCombinedWorkoutRequest) toPatch() (service.CombinedWorkoutPatch, error) {
	patch := service.CombinedWorkoutPatch{
		Name:        r.Name,
		Description: r.Description,
		IsPublic:    r.IsPublic,
		Notes:       r.Notes,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
	if r.Workouts != nil {
		workouts, err := parseObjectIDs(r.Workouts)
		if err != nil {
			return patch, err
		}
		patch.Workouts = workouts
	}
	if r.AssignedTo != nil {
		assignedTo, err := parseObjectIDs(r.AssignedTo)
		if err != nil {
			return patch, err
		}
		patch.AssignedTo = assignedTo
	}
	if r.Tags != nil {
		patch.Tags = r.Tags
	}
	return patch, nil
}

// --- Handler Methods ---

// CreateCombinedWorkout handles POST /combined-workouts. Every referenced
// workout must resolve or nothing is written.
func (h *CombinedWorkoutHandler) CreateCombinedWorkout(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req SaveCombinedWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	cw, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ObjectID in request.")
		return
	}

	created, err := h.combinedService.Create(c.Request.Context(), actor, cw)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapCombinedWorkoutToResponse(created))
}

// GetCombinedWorkout handles GET /combined-workouts/:id.
func (h *CombinedWorkoutHandler) GetCombinedWorkout(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid combined workout ID format.")
		return
	}

	detail, err := h.combinedService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, CombinedWorkoutDetailResponse{
		CombinedWorkoutResponse: MapCombinedWorkoutToResponse(detail.CombinedWorkout),
		ResolvedWorkouts:        MapWorkoutsToResponse(detail.Workouts),
	})
}

// ListCombinedWorkouts handles GET /combined-workouts.
func (h *CombinedWorkoutHandler) ListCombinedWorkouts(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	cws, err := h.combinedService.List(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCombinedWorkoutsToResponse(cws))
}

// UpdateCombinedWorkout handles PUT /combined-workouts/:id. Fields absent
// from the body keep their stored values.
func (h *CombinedWorkoutHandler) UpdateCombinedWorkout(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid combined workout ID format.")
		return
	}

	var req UpdateCombinedWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ObjectID in request.")
		return
	}

	updated, err := h.combinedService.Update(c.Request.Context(), actor, id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCombinedWorkoutToResponse(updated))
}

// DeleteCombinedWorkout handles DELETE /combined-workouts/:id.
func (h *CombinedWorkoutHandler) DeleteCombinedWorkout(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid combined workout ID format.")
		return
	}

	if err := h.combinedService.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
