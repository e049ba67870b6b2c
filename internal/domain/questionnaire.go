package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer is a yes/no response to a medical screening question.
type Answer string

const (
	AnswerYes Answer = "yes"
	AnswerNo  Answer = "no"
)

// RiskLevel categorizes the computed risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// MaxRiskScore caps the questionnaire risk score. The raw point sum can
// reach 15; anything above the cap is discarded.
const MaxRiskScore = 10

// BloodPressure holds one blood pressure reading in mmHg.
type BloodPressure struct {
	Systolic  *int `bson:"systolic,omitempty" json:"systolic,omitempty"`
	Diastolic *int `bson:"diastolic,omitempty" json:"diastolic,omitempty"`
}

// HealthQuestionnaire is the per-user health intake record. There is at
// most one per user (upserted by UserID). The derived fields RiskScore,
// RiskLevel, IsComplete and LastUpdated are never taken from the client;
// Recalculate sets them immediately before every persist.
type HealthQuestionnaire struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	// Physiological measurements. All optional; pointers distinguish
	// "not answered" from a zero reading.
	BloodPressure     BloodPressure `bson:"bloodPressure,omitempty" json:"bloodPressure"`
	RestingHeartRate  *int          `bson:"restingHeartRate,omitempty" json:"restingHeartRate,omitempty"`
	CardioTest        *int          `bson:"cardioTest,omitempty" json:"cardioTest,omitempty"`
	PushupsPerMinute  *int          `bson:"pushupsPerMinute,omitempty" json:"pushupsPerMinute,omitempty"`
	SitupsPerMinute   *int          `bson:"situpsPerMinute,omitempty" json:"situpsPerMinute,omitempty"`
	Stretching        *float64      `bson:"stretching,omitempty" json:"stretching,omitempty"`
	BodyFatPercentage *float64      `bson:"bodyFatPercentage,omitempty" json:"bodyFatPercentage,omitempty"`
	BodyWeight        *float64      `bson:"bodyWeight,omitempty" json:"bodyWeight,omitempty"`

	// Medical screening answers. Empty string means unanswered.
	HeartProblems                  Answer `bson:"heartProblems,omitempty" json:"heartProblems,omitempty"`
	ChestPainDuringExercise        Answer `bson:"chestPainDuringExercise,omitempty" json:"chestPainDuringExercise,omitempty"`
	ChestPainLastMonth             Answer `bson:"chestPainLastMonth,omitempty" json:"chestPainLastMonth,omitempty"`
	DizzinessOrFainting            Answer `bson:"dizzinessOrFainting,omitempty" json:"dizzinessOrFainting,omitempty"`
	JointProblems                  Answer `bson:"jointProblems,omitempty" json:"jointProblems,omitempty"`
	BloodPressureOrHeartMedication Answer `bson:"bloodPressureOrHeartMedication,omitempty" json:"bloodPressureOrHeartMedication,omitempty"`
	Type1Diabetes                  Answer `bson:"type1Diabetes,omitempty" json:"type1Diabetes,omitempty"`
	OtherExerciseRestrictions      Answer `bson:"otherExerciseRestrictions,omitempty" json:"otherExerciseRestrictions,omitempty"`

	HasAllergies     Answer `bson:"hasAllergies,omitempty" json:"hasAllergies,omitempty"`
	AllergiesDetails string `bson:"allergiesDetails,omitempty" json:"allergiesDetails,omitempty"`

	// Derived fields, recomputed on every save.
	IsComplete  bool      `bson:"isComplete" json:"isComplete"`
	RiskScore   int       `bson:"riskScore" json:"riskScore"`
	RiskLevel   RiskLevel `bson:"riskLevel" json:"riskLevel"`
	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewQuestionnaireShell returns the empty questionnaire created lazily on
// first read: no measurements, every screening answer defaulted to "no".
func NewQuestionnaireShell(userID primitive.ObjectID) *HealthQuestionnaire {
	return &HealthQuestionnaire{
		UserID:                         userID,
		HeartProblems:                  AnswerNo,
		ChestPainDuringExercise:        AnswerNo,
		ChestPainLastMonth:             AnswerNo,
		DizzinessOrFainting:            AnswerNo,
		JointProblems:                  AnswerNo,
		BloodPressureOrHeartMedication: AnswerNo,
		Type1Diabetes:                  AnswerNo,
		OtherExerciseRestrictions:      AnswerNo,
		HasAllergies:                   AnswerNo,
		RiskLevel:                      RiskLow,
	}
}

// riskPoints maps each screening answer to its risk weight.
// Cardiovascular flags carry the highest weights.
func (q *HealthQuestionnaire) riskPoints() int {
	score := 0
	if q.HeartProblems == AnswerYes {
		score += 3
	}
	if q.ChestPainDuringExercise == AnswerYes {
		score += 3
	}
	if q.ChestPainLastMonth == AnswerYes {
		score += 2
	}
	if q.DizzinessOrFainting == AnswerYes {
		score += 2
	}
	if q.BloodPressureOrHeartMedication == AnswerYes {
		score += 2
	}
	if q.Type1Diabetes == AnswerYes {
		score++
	}
	if q.JointProblems == AnswerYes {
		score++
	}
	if q.OtherExerciseRestrictions == AnswerYes {
		score++
	}
	return score
}

// CalculateRiskScore computes the risk score from the screening answers,
// clamps it to MaxRiskScore and stores both the score and the matching
// risk level on the questionnaire. It returns the clamped score.
func (q *HealthQuestionnaire) CalculateRiskScore() int {
	score := q.riskPoints()
	if score > MaxRiskScore {
		score = MaxRiskScore
	}
	q.RiskScore = score

	switch {
	case score >= 6:
		q.RiskLevel = RiskHigh
	case score >= 3:
		q.RiskLevel = RiskModerate
	default:
		q.RiskLevel = RiskLow
	}
	return q.RiskScore
}

// IsQuestionnaireComplete reports whether every required field has been
// answered: both blood pressure readings, resting heart rate, body weight
// and all nine screening answers. When HasAllergies is "yes" the details
// text must be non-empty after trimming.
func (q *HealthQuestionnaire) IsQuestionnaireComplete() bool {
	if q.BloodPressure.Systolic == nil || q.BloodPressure.Diastolic == nil {
		return false
	}
	if q.RestingHeartRate == nil || q.BodyWeight == nil {
		return false
	}
	answers := []Answer{
		q.HeartProblems,
		q.ChestPainDuringExercise,
		q.ChestPainLastMonth,
		q.DizzinessOrFainting,
		q.JointProblems,
		q.BloodPressureOrHeartMedication,
		q.Type1Diabetes,
		q.OtherExerciseRestrictions,
		q.HasAllergies,
	}
	for _, a := range answers {
		if a == "" {
			return false
		}
	}
	if q.HasAllergies == AnswerYes && strings.TrimSpace(q.AllergiesDetails) == "" {
		return false
	}
	return true
}

// Recalculate refreshes every derived field. Repositories call it
// unconditionally before each persist so the stored score, level and
// completeness can never drift from the answers.
func (q *HealthQuestionnaire) Recalculate() {
	q.CalculateRiskScore()
	q.IsComplete = q.IsQuestionnaireComplete()
	q.LastUpdated = time.Now().UTC()
}

// Blood pressure status bands. Evaluated in order; first match wins.
const (
	BPStatusUnknown  = "unknown"
	BPStatusNormal   = "normal"
	BPStatusElevated = "elevated"
	BPStatusHigh     = "high"
)

// BloodPressureStatus classifies the stored reading. Not persisted.
func (q *HealthQuestionnaire) BloodPressureStatus() string {
	if q.BloodPressure.Systolic == nil || q.BloodPressure.Diastolic == nil {
		return BPStatusUnknown
	}
	systolic, diastolic := *q.BloodPressure.Systolic, *q.BloodPressure.Diastolic
	switch {
	case systolic < 120 && diastolic < 80:
		return BPStatusNormal
	case systolic < 130 && diastolic < 80:
		return BPStatusElevated
	default:
		return BPStatusHigh
	}
}

// Heart rate status bands.
const (
	HRStatusUnknown     = "unknown"
	HRStatusBradycardia = "bradycardia"
	HRStatusNormal      = "normal"
	HRStatusTachycardia = "tachycardia"
)

// HeartRateStatus classifies the stored resting heart rate. Not persisted.
func (q *HealthQuestionnaire) HeartRateStatus() string {
	if q.RestingHeartRate == nil {
		return HRStatusUnknown
	}
	hr := *q.RestingHeartRate
	switch {
	case hr < 60:
		return HRStatusBradycardia
	case hr <= 100:
		return HRStatusNormal
	default:
		return HRStatusTachycardia
	}
}

// Recommendations returns the coaching guidance derived from the current
// risk level and answers. Order is fixed: the risk-level block first, then
// the joint-problem block, then the allergy block. Entries are never
// deduplicated or reordered.
func (q *HealthQuestionnaire) Recommendations() []string {
	var recs []string

	switch q.RiskLevel {
	case RiskHigh:
		recs = append(recs,
			"Medical consultation recommended before starting an exercise program",
			"Avoid high-intensity exercise",
			"Medical supervision during exercise",
		)
	case RiskModerate:
		recs = append(recs,
			"Medical consultation suggested",
			"Start with low-intensity exercise",
			"Regular monitoring of vital signs",
		)
	default:
		recs = append(recs,
			"Standard exercise program recommended",
			"Gradual progression of intensity",
		)
	}

	if q.JointProblems == AnswerYes {
		recs = append(recs,
			"Avoid high-impact exercise",
			"Prefer pool-based or low-impact exercise",
		)
	}

	if q.HasAllergies == AnswerYes {
		recs = append(recs,
			"Inform the medical team about your allergies",
			"Have an emergency plan in case of an allergic reaction",
		)
	}

	return recs
}
