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

// QuestionnaireHandler holds the questionnaire service dependency.
type QuestionnaireHandler struct {
	questionnaireService service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new QuestionnaireHandler.
func NewQuestionnaireHandler(questionnaireService service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: questionnaireService}
}

// --- DTOs ---

type BloodPressureRequest struct {
	Systolic  *int `json:"systolic" binding:"omitempty,min=70,max=200"`
	Diastolic *int `json:"diastolic" binding:"omitempty,min=40,max=130"`
}

// SaveQuestionnaireRequest carries the client-editable questionnaire
// fields. Derived values (risk score, level, completeness) are not
// accepted from the client.
type SaveQuestionnaireRequest struct {
	BloodPressure     BloodPressureRequest `json:"bloodPressure"`
	RestingHeartRate  *int                 `json:"restingHeartRate" binding:"omitempty,min=40,max=120"`
	CardioTest        *int                 `json:"cardioTest" binding:"omitempty,min=1,max=60"`
	PushupsPerMinute  *int                 `json:"pushupsPerMinute" binding:"omitempty,min=0,max=100"`
	SitupsPerMinute   *int                 `json:"situpsPerMinute" binding:"omitempty,min=0,max=100"`
	Stretching        *float64             `json:"stretching" binding:"omitempty,min=0,max=50"`
	BodyFatPercentage *float64             `json:"bodyFatPercentage" binding:"omitempty,min=5,max=50"`
	BodyWeight        *float64             `json:"bodyWeight" binding:"omitempty,min=30,max=200"`

	HeartProblems                  string `json:"heartProblems" binding:"omitempty,oneof=yes no"`
	ChestPainDuringExercise        string `json:"chestPainDuringExercise" binding:"omitempty,oneof=yes no"`
	ChestPainLastMonth             string `json:"chestPainLastMonth" binding:"omitempty,oneof=yes no"`
	DizzinessOrFainting            string `json:"dizzinessOrFainting" binding:"omitempty,oneof=yes no"`
	JointProblems                  string `json:"jointProblems" binding:"omitempty,oneof=yes no"`
	BloodPressureOrHeartMedication string `json:"bloodPressureOrHeartMedication" binding:"omitempty,oneof=yes no"`
	Type1Diabetes                  string `json:"type1Diabetes" binding:"omitempty,oneof=yes no"`
	OtherExerciseRestrictions      string `json:"otherExerciseRestrictions" binding:"omitempty,oneof=yes no"`
	HasAllergies                   string `json:"hasAllergies" binding:"omitempty,oneof=yes no"`
	AllergiesDetails               string `json:"allergiesDetails" binding:"omitempty,max=1000"`
}

type QuestionnaireResponse struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"userId"`

	BloodPressure     domain.BloodPressure `json:"bloodPressure"`
	RestingHeartRate  *int                 `json:"restingHeartRate,omitempty"`
	CardioTest        *int                 `json:"cardioTest,omitempty"`
	PushupsPerMinute  *int                 `json:"pushupsPerMinute,omitempty"`
	SitupsPerMinute   *int                 `json:"situpsPerMinute,omitempty"`
	Stretching        *float64             `json:"stretching,omitempty"`
	BodyFatPercentage *float64             `json:"bodyFatPercentage,omitempty"`
	BodyWeight        *float64             `json:"bodyWeight,omitempty"`

	HeartProblems                  string `json:"heartProblems,omitempty"`
	ChestPainDuringExercise        string `json:"chestPainDuringExercise,omitempty"`
	ChestPainLastMonth             string `json:"chestPainLastMonth,omitempty"`
	DizzinessOrFainting            string `json:"dizzinessOrFainting,omitempty"`
	JointProblems                  string `json:"jointProblems,omitempty"`
	BloodPressureOrHeartMedication string `json:"bloodPressureOrHeartMedication,omitempty"`
	Type1Diabetes                  string `json:"type1Diabetes,omitempty"`
	OtherExerciseRestrictions      string `json:"otherExerciseRestrictions,omitempty"`
	HasAllergies                   string `json:"hasAllergies,omitempty"`
	AllergiesDetails               string `json:"allergiesDetails,omitempty"`

	IsComplete  bool      `json:"isComplete"`
	RiskScore   int       `json:"riskScore"`
	RiskLevel   string    `json:"riskLevel"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// MapQuestionnaireToResponse converts a domain.HealthQuestionnaire to its DTO.
func MapQuestionnaireToResponse(q *domain.HealthQuestionnaire) QuestionnaireResponse {
	if q == nil {
		return QuestionnaireResponse{}
	}
	resp := QuestionnaireResponse{
		UserID:            q.UserID.Hex(),
		BloodPressure:     q.BloodPressure,
		RestingHeartRate:  q.RestingHeartRate,
		CardioTest:        q.CardioTest,
		PushupsPerMinute:  q.PushupsPerMinute,
		SitupsPerMinute:   q.SitupsPerMinute,
		Stretching:        q.Stretching,
		BodyFatPercentage: q.BodyFatPercentage,
		BodyWeight:        q.BodyWeight,

		HeartProblems:                  string(q.HeartProblems),
		ChestPainDuringExercise:        string(q.ChestPainDuringExercise),
		ChestPainLastMonth:             string(q.ChestPainLastMonth),
		DizzinessOrFainting:            string(q.DizzinessOrFainting),
		JointProblems:                  string(q.JointProblems),
		BloodPressureOrHeartMedication: string(q.BloodPressureOrHeartMedication),
		Type1Diabetes:                  string(q.Type1Diabetes),
		OtherExerciseRestrictions:      string(q.OtherExerciseRestrictions),
		HasAllergies:                   string(q.HasAllergies),
		AllergiesDetails:               q.AllergiesDetails,

		IsComplete:  q.IsComplete,
		RiskScore:   q.RiskScore,
		RiskLevel:   string(q.RiskLevel),
		LastUpdated: q.LastUpdated,
	}
	if q.ID != primitive.NilObjectID {
		resp.ID = q.ID.Hex()
	}
	return resp
}

func (r SaveQuestionnaireRequest) toInput() service.QuestionnaireInput {
	return service.QuestionnaireInput{
		BloodPressure: domain.BloodPressure{
			Systolic:  r.BloodPressure.Systolic,
			Diastolic: r.BloodPressure.Diastolic,
		},
		RestingHeartRate:  r.RestingHeartRate,
		CardioTest:        r.CardioTest,
		PushupsPerMinute:  r.PushupsPerMinute,
		SitupsPerMinute:   r.SitupsPerMinute,
		Stretching:        r.Stretching,
		BodyFatPercentage: r.BodyFatPercentage,
		BodyWeight:        r.BodyWeight,

		HeartProblems:                  domain.Answer(r.HeartProblems),
		ChestPainDuringExercise:        domain.Answer(r.ChestPainDuringExercise),
		ChestPainLastMonth:             domain.Answer(r.ChestPainLastMonth),
		DizzinessOrFainting:            domain.Answer(r.DizzinessOrFainting),
		JointProblems:                  domain.Answer(r.JointProblems),
		BloodPressureOrHeartMedication: domain.Answer(r.BloodPressureOrHeartMedication),
		Type1Diabetes:                  domain.Answer(r.Type1Diabetes),
		OtherExerciseRestrictions:      domain.Answer(r.OtherExerciseRestrictions),
		HasAllergies:                   domain.Answer(r.HasAllergies),
		AllergiesDetails:               r.AllergiesDetails,
	}
}

// --- Handler Methods ---

// GetQuestionnaire handles GET /questionnaires/:userId. A user with no
// stored questionnaire gets the default shell back.
func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	q, err := h.questionnaireService.Get(c.Request.Context(), actor, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapQuestionnaireToResponse(q))
}

// SaveQuestionnaire handles PUT /questionnaires/:userId.
func (h *QuestionnaireHandler) SaveQuestionnaire(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	var req SaveQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	saved, err := h.questionnaireService.Save(c.Request.Context(), actor, userID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapQuestionnaireToResponse(saved))
}

// GetRecommendations handles GET /questionnaires/:userId/recommendations.
func (h *QuestionnaireHandler) GetRecommendations(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	summary, err := h.questionnaireService.Assessment(c.Request.Context(), actor, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"riskScore":           summary.Questionnaire.RiskScore,
		"riskLevel":           summary.Questionnaire.RiskLevel,
		"isComplete":          summary.Questionnaire.IsComplete,
		"bloodPressureStatus": summary.BloodPressureStatus,
		"heartRateStatus":     summary.HeartRateStatus,
		"recommendations":     summary.Recommendations,
	})
}

// ListQuestionnaires handles GET /questionnaires with optional riskLevel
// and isComplete filters. Coach and admin only (enforced by routing).
func (h *QuestionnaireHandler) ListQuestionnaires(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var filter repository.QuestionnaireFilter
	if raw := c.Query("riskLevel"); raw != "" {
		level := domain.RiskLevel(raw)
		if level != domain.RiskLow && level != domain.RiskModerate && level != domain.RiskHigh {
			abortWithError(c, http.StatusBadRequest, "riskLevel must be low, moderate or high")
			return
		}
		filter.RiskLevel = &level
	}
	if raw := c.Query("isComplete"); raw != "" {
		complete := raw == "true"
		filter.IsComplete = &complete
	}

	questionnaires, err := h.questionnaireService.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]QuestionnaireResponse, len(questionnaires))
	for i := range questionnaires {
		responses[i] = MapQuestionnaireToResponse(&questionnaires[i])
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteQuestionnaire handles DELETE /questionnaires/:userId. Admin only.
func (h *QuestionnaireHandler) DeleteQuestionnaire(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	if err := h.questionnaireService.Delete(c.Request.Context(), actor, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
