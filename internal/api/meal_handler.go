package api

import (
	"net/http"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealHandler holds the meal service dependency.
type MealHandler struct {
	mealService service.MealService
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// --- DTOs ---

type MealItemRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Icon     string  `json:"icon" binding:"omitempty,max=50"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required,oneof=g ml piece cup tbsp tsp oz"`

	Calories *float64 `json:"calories" binding:"omitempty,min=0"`
	Protein  *float64 `json:"protein" binding:"omitempty,min=0"`
	Carbs    *float64 `json:"carbs" binding:"omitempty,min=0"`
	Fat      *float64 `json:"fat" binding:"omitempty,min=0"`
	Fiber    *float64 `json:"fiber" binding:"omitempty,min=0"`
}

// SaveMealRequest carries the client-editable meal fields. Totals may be
// supplied but are overwritten by the aggregation whenever items are
// present.
type SaveMealRequest struct {
	Name        string            `json:"name" binding:"required,max=100"`
	Description string            `json:"description" binding:"omitempty,max=500"`
	Type        string            `json:"type" binding:"required,oneof=breakfast lunch dinner snack"`
	Items       []MealItemRequest `json:"items" binding:"omitempty,dive"`

	TotalCalories *float64 `json:"totalCalories" binding:"omitempty,min=0"`
	TotalProtein  *float64 `json:"totalProtein" binding:"omitempty,min=0"`
	TotalCarbs    *float64 `json:"totalCarbs" binding:"omitempty,min=0"`
	TotalFat      *float64 `json:"totalFat" binding:"omitempty,min=0"`
	TotalFiber    *float64 `json:"totalFiber" binding:"omitempty,min=0"`

	ImageURL   string   `json:"imageUrl" binding:"omitempty,url"`
	AssignedTo string   `json:"assignedTo" binding:"omitempty,len=24"`
	Tags       []string `json:"tags" binding:"omitempty,dive,max=30"`
}

type ReviewMealRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes" binding:"omitempty,max=500"`
}

type MealResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        string            `json:"type"`
	Items       []domain.MealItem `json:"items"`

	TotalCalories *float64 `json:"totalCalories,omitempty"`
	TotalProtein  *float64 `json:"totalProtein,omitempty"`
	TotalCarbs    *float64 `json:"totalCarbs,omitempty"`
	TotalFat      *float64 `json:"totalFat,omitempty"`
	TotalFiber    *float64 `json:"totalFiber,omitempty"`

	ImageURL    string    `json:"imageUrl,omitempty"`
	Status      string    `json:"status"`
	ReviewedBy  string    `json:"reviewedBy,omitempty"`
	ReviewNotes string    `json:"reviewNotes,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MapMealToResponse converts a domain.Meal to MealResponse DTO.
func MapMealToResponse(m *domain.Meal) MealResponse {
	if m == nil {
		return MealResponse{}
	}
	resp := MealResponse{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Description: m.Description,
		Type:        string(m.Type),
		Items:       m.Items,

		TotalCalories: m.TotalCalories,
		TotalProtein:  m.TotalProtein,
		TotalCarbs:    m.TotalCarbs,
		TotalFat:      m.TotalFat,
		TotalFiber:    m.TotalFiber,

		ImageURL:    m.ImageURL,
		Status:      string(m.Status),
		ReviewNotes: m.ReviewNotes,
		CreatedBy:   m.CreatedBy.Hex(),
		Tags:        m.Tags,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ReviewedBy != nil {
		resp.ReviewedBy = m.ReviewedBy.Hex()
	}
	if m.AssignedTo != nil {
		resp.AssignedTo = m.AssignedTo.Hex()
	}
	return resp
}

func (r SaveMealRequest) toDomain() (*domain.Meal, error) {
	items := make([]domain.MealItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.MealItem{
			Name:     it.Name,
			Icon:     it.Icon,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Calories: it.Calories,
			Protein:  it.Protein,
			Carbs:    it.Carbs,
			Fat:      it.Fat,
			Fiber:    it.Fiber,
		})
	}

	meal := &domain.Meal{
		Name:        r.Name,
		Description: r.Description,
		Type:        domain.MealType(r.Type),
		Items:       items,

		TotalCalories: r.TotalCalories,
		TotalProtein:  r.TotalProtein,
		TotalCarbs:    r.TotalCarbs,
		TotalFat:      r.TotalFat,
		TotalFiber:    r.TotalFiber,

		ImageURL: r.ImageURL,
		Tags:     r.Tags,
	}
	if r.AssignedTo != "" {
		id, err := primitive.ObjectIDFromHex(r.AssignedTo)
		if err != nil {
			return nil, err
		}
		meal.AssignedTo = &id
	}
	return meal, nil
}

// --- Handler Methods ---

// CreateMeal handles POST /meals.
func (h *MealHandler) CreateMeal(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req SaveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	meal, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ObjectID in request.")
		return
	}

	created, err := h.mealService.Create(c.Request.Context(), actor, meal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapMealToResponse(created))
}

// GetMeal handles GET /meals/:id.
func (h *MealHandler) GetMeal(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid meal ID format.")
		return
	}

	meal, err := h.mealService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMealToResponse(meal))
}

// ListMeals handles GET /meals.
func (h *MealHandler) ListMeals(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	meals, err := h.mealService.List(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]MealResponse, len(meals))
	for i := range meals {
		responses[i] = MapMealToResponse(&meals[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateMeal handles PUT /meals/:id. Editing sends the meal back to
// pending review.
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid meal ID format.")
		return
	}

	var req SaveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	meal, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ObjectID in request.")
		return
	}
	meal.ID = id

	updated, err := h.mealService.Update(c.Request.Context(), actor, meal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMealToResponse(updated))
}

// DeleteMeal handles DELETE /meals/:id.
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid meal ID format.")
		return
	}

	if err := h.mealService.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReviewMeal handles POST /meals/:id/review. Coach and admin only.
func (h *MealHandler) ReviewMeal(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid meal ID format.")
		return
	}

	var req ReviewMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	meal, err := h.mealService.Review(c.Request.Context(), actor, id, req.Approve, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMealToResponse(meal))
}
