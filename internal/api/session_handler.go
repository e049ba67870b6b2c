package api

import (
	"net/http"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

type SaveSessionRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Duration    *int     `json:"duration" binding:"omitempty,min=1"` // minutes
	Type        string   `json:"type" binding:"required,oneof=strength cardio flexibility mixed custom"`
	Difficulty  string   `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	IsPublic    bool     `json:"isPublic"`
	AssignedTo  []string `json:"assignedTo" binding:"omitempty,dive,len=24"`
	Tags        []string `json:"tags" binding:"omitempty,dive,max=30"`
}

type AttachRequest struct {
	ID string `json:"id" binding:"required,len=24"`
}

type UpdateOrderRequest struct {
	Order int `json:"order" binding:"required,min=1"`
}

type SessionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Duration    *int      `json:"duration,omitempty"`
	Type        string    `json:"type"`
	Difficulty  string    `json:"difficulty"`
	IsPublic    bool      `json:"isPublic"`
	CreatedBy   string    `json:"createdBy"`
	AssignedTo  []string  `json:"assignedTo,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SessionDetailResponse carries the session plus its ordered contents.
type SessionDetailResponse struct {
	Session          SessionResponse           `json:"session"`
	Workouts         []WorkoutResponse         `json:"workouts"`
	CombinedWorkouts []CombinedWorkoutResponse `json:"combinedWorkouts"`
}

// MapSessionToResponse converts a domain.Session to SessionResponse DTO.
func MapSessionToResponse(s *domain.Session) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	resp := SessionResponse{
		ID:          s.ID.Hex(),
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.Duration,
		Type:        string(s.Type),
		Difficulty:  string(s.Difficulty),
		IsPublic:    s.IsPublic,
		CreatedBy:   s.CreatedBy.Hex(),
		Tags:        s.Tags,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	for _, id := range s.AssignedTo {
		resp.AssignedTo = append(resp.AssignedTo, id.Hex())
	}
	return resp
}

func (r SaveSessionRequest) toDomain() (*domain.Session, error) {
	assignedTo, err := parseObjectIDs(r.AssignedTo)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
		Type:        domain.WorkoutType(r.Type),
		Difficulty:  domain.Difficulty(r.Difficulty),
		IsPublic:    r.IsPublic,
		AssignedTo:  assignedTo,
		Tags:        r.Tags,
	}, nil
}

// --- Handler Methods ---

// CreateSession handles POST /sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	session, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ObjectID in request.")
		return
	}

	created, err := h.sessionService.Create(c.Request.Context(), actor, session)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSessionToResponse(created))
}

// GetSession handles GET /sessions/:id. Workouts and combined workouts come
// back sorted ascending by their order within the session.
func (h *SessionHandler) GetSession(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	detail, err := h.sessionService.GetDetail(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionDetailResponse{
		Session:          MapSessionToResponse(detail.Session),
		Workouts:         MapWorkoutsToResponse(detail.Workouts),
		CombinedWorkouts: MapCombinedWorkoutsToResponse(detail.CombinedWorkouts),
	})
}

// ListSessions handles GET /sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	sessions, err := h.sessionService.List(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = MapSessionToResponse(&sessions[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateSession handles PUT /sessions/:id.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	var req SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	session, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ObjectID in request.")
		return
	}
	session.ID = id

	updated, err := h.sessionService.Update(c.Request.Context(), actor, session)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(updated))
}

// DeleteSession handles DELETE /sessions/:id. What gets deleted along with
// the session depends on the configured cascade policy.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// sessionItemIDs extracts and validates the session and item IDs shared by
// the attach/detach/reorder endpoints.
func sessionItemIDs(c *gin.Context, itemParam string) (sessionID, itemID primitive.ObjectID, ok bool) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	itemID, err = primitive.ObjectIDFromHex(c.Param(itemParam))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid item ID format.")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return sessionID, itemID, true
}

// AddWorkoutToSession handles POST /sessions/:id/workouts. The workout is
// appended at the next free order position.
func (h *SessionHandler) AddWorkoutToSession(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	workout, err := h.sessionService.AddWorkout(c.Request.Context(), actor, sessionID, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// RemoveWorkoutFromSession handles DELETE /sessions/:id/workouts/:workoutId.
func (h *SessionHandler) RemoveWorkoutFromSession(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	sessionID, workoutID, ok := sessionItemIDs(c, "workoutId")
	if !ok {
		return
	}

	if err := h.sessionService.RemoveWorkout(c.Request.Context(), actor, sessionID, workoutID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateWorkoutOrder handles PATCH /sessions/:id/workouts/:workoutId/order.
// The order is set directly; no other workout is renumbered.
func (h *SessionHandler) UpdateWorkoutOrder(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	sessionID, workoutID, ok := sessionItemIDs(c, "workoutId")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.sessionService.UpdateWorkoutOrder(c.Request.Context(), actor, sessionID, workoutID, req.Order); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workoutId": workoutID.Hex(), "order": req.Order})
}

// AddCombinedWorkoutToSession handles POST /sessions/:id/combined-workouts.
func (h *SessionHandler) AddCombinedWorkoutToSession(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	combinedID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid combined workout ID format.")
		return
	}

	cw, err := h.sessionService.AddCombinedWorkout(c.Request.Context(), actor, sessionID, combinedID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCombinedWorkoutToResponse(cw))
}

// RemoveCombinedWorkoutFromSession handles
// DELETE /sessions/:id/combined-workouts/:combinedId.
func (h *SessionHandler) RemoveCombinedWorkoutFromSession(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	sessionID, combinedID, ok := sessionItemIDs(c, "combinedId")
	if !ok {
		return
	}

	if err := h.sessionService.RemoveCombinedWorkout(c.Request.Context(), actor, sessionID, combinedID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateCombinedWorkoutOrder handles
// PATCH /sessions/:id/combined-workouts/:combinedId/order.
func (h *SessionHandler) UpdateCombinedWorkoutOrder(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	sessionID, combinedID, ok := sessionItemIDs(c, "combinedId")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.sessionService.UpdateCombinedWorkoutOrder(c.Request.Context(), actor, sessionID, combinedID, req.Order); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"combinedWorkoutId": combinedID.Hex(), "order": req.Order})
}
