package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func fullQuestionnaire() *HealthQuestionnaire {
	q := NewQuestionnaireShell(primitive.NewObjectID())
	q.BloodPressure = BloodPressure{Systolic: intPtr(118), Diastolic: intPtr(76)}
	q.RestingHeartRate = intPtr(62)
	q.BodyWeight = floatPtr(74.5)
	return q
}

func TestCalculateRiskScoreAllNo(t *testing.T) {
	q := NewQuestionnaireShell(primitive.NewObjectID())

	score := q.CalculateRiskScore()

	assert.Equal(t, 0, score)
	assert.Equal(t, RiskLow, q.RiskLevel)
}

func TestCalculateRiskScoreWeights(t *testing.T) {
	cases := []struct {
		name   string
		modify func(q *HealthQuestionnaire)
		score  int
		level  RiskLevel
	}{
		{
			name:   "heart problems alone",
			modify: func(q *HealthQuestionnaire) { q.HeartProblems = AnswerYes },
			score:  3,
			level:  RiskModerate,
		},
		{
			name:   "chest pain during exercise alone",
			modify: func(q *HealthQuestionnaire) { q.ChestPainDuringExercise = AnswerYes },
			score:  3,
			level:  RiskModerate,
		},
		{
			name:   "chest pain last month alone",
			modify: func(q *HealthQuestionnaire) { q.ChestPainLastMonth = AnswerYes },
			score:  2,
			level:  RiskLow,
		},
		{
			name:   "dizziness alone",
			modify: func(q *HealthQuestionnaire) { q.DizzinessOrFainting = AnswerYes },
			score:  2,
			level:  RiskLow,
		},
		{
			name:   "medication alone",
			modify: func(q *HealthQuestionnaire) { q.BloodPressureOrHeartMedication = AnswerYes },
			score:  2,
			level:  RiskLow,
		},
		{
			name: "single point flags",
			modify: func(q *HealthQuestionnaire) {
				q.Type1Diabetes = AnswerYes
				q.JointProblems = AnswerYes
				q.OtherExerciseRestrictions = AnswerYes
			},
			score: 3,
			level: RiskModerate,
		},
		{
			name: "cardiac pair crosses the high threshold",
			modify: func(q *HealthQuestionnaire) {
				q.HeartProblems = AnswerYes
				q.ChestPainDuringExercise = AnswerYes
			},
			score: 6,
			level: RiskHigh,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQuestionnaireShell(primitive.NewObjectID())
			tc.modify(q)

			assert.Equal(t, tc.score, q.CalculateRiskScore())
			assert.Equal(t, tc.level, q.RiskLevel)
		})
	}
}

func TestCalculateRiskScoreClampsAtTen(t *testing.T) {
	q := NewQuestionnaireShell(primitive.NewObjectID())
	q.HeartProblems = AnswerYes
	q.ChestPainDuringExercise = AnswerYes
	q.ChestPainLastMonth = AnswerYes
	q.DizzinessOrFainting = AnswerYes
	q.BloodPressureOrHeartMedication = AnswerYes
	q.Type1Diabetes = AnswerYes
	q.JointProblems = AnswerYes
	q.OtherExerciseRestrictions = AnswerYes

	// Raw sum is 15; the questionnaire never reports more than 10.
	assert.Equal(t, MaxRiskScore, q.CalculateRiskScore())
	assert.Equal(t, RiskHigh, q.RiskLevel)
}

func TestCalculateRiskScoreMonotonic(t *testing.T) {
	base := NewQuestionnaireShell(primitive.NewObjectID())
	base.ChestPainLastMonth = AnswerYes
	baseScore := base.CalculateRiskScore()

	flipped := NewQuestionnaireShell(primitive.NewObjectID())
	flipped.ChestPainLastMonth = AnswerYes
	flipped.JointProblems = AnswerYes

	assert.GreaterOrEqual(t, flipped.CalculateRiskScore(), baseScore)
}

func TestIsQuestionnaireComplete(t *testing.T) {
	t.Run("shell is incomplete", func(t *testing.T) {
		q := NewQuestionnaireShell(primitive.NewObjectID())
		assert.False(t, q.IsQuestionnaireComplete())
	})

	t.Run("all required fields present", func(t *testing.T) {
		q := fullQuestionnaire()
		assert.True(t, q.IsQuestionnaireComplete())
	})

	t.Run("missing diastolic reading", func(t *testing.T) {
		q := fullQuestionnaire()
		q.BloodPressure.Diastolic = nil
		assert.False(t, q.IsQuestionnaireComplete())
	})

	t.Run("missing body weight", func(t *testing.T) {
		q := fullQuestionnaire()
		q.BodyWeight = nil
		assert.False(t, q.IsQuestionnaireComplete())
	})

	t.Run("unanswered screening question", func(t *testing.T) {
		q := fullQuestionnaire()
		q.Type1Diabetes = ""
		assert.False(t, q.IsQuestionnaireComplete())
	})

	t.Run("allergies without details", func(t *testing.T) {
		q := fullQuestionnaire()
		q.HasAllergies = AnswerYes
		q.AllergiesDetails = "   "
		assert.False(t, q.IsQuestionnaireComplete())

		q.AllergiesDetails = "peanuts"
		assert.True(t, q.IsQuestionnaireComplete())
	})
}

func TestRecalculateRefreshesDerivedFields(t *testing.T) {
	q := fullQuestionnaire()
	q.HeartProblems = AnswerYes
	q.ChestPainDuringExercise = AnswerYes
	q.RiskScore = 99
	q.RiskLevel = RiskLow
	q.IsComplete = false

	q.Recalculate()

	assert.Equal(t, 6, q.RiskScore)
	assert.Equal(t, RiskHigh, q.RiskLevel)
	assert.True(t, q.IsComplete)
	assert.False(t, q.LastUpdated.IsZero())
}

func TestBloodPressureStatus(t *testing.T) {
	cases := []struct {
		name      string
		systolic  *int
		diastolic *int
		want      string
	}{
		{"no reading", nil, nil, BPStatusUnknown},
		{"partial reading", intPtr(118), nil, BPStatusUnknown},
		{"normal", intPtr(118), intPtr(76), BPStatusNormal},
		{"elevated", intPtr(125), intPtr(78), BPStatusElevated},
		{"high systolic", intPtr(135), intPtr(78), BPStatusHigh},
		{"high diastolic", intPtr(118), intPtr(85), BPStatusHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &HealthQuestionnaire{
				BloodPressure: BloodPressure{Systolic: tc.systolic, Diastolic: tc.diastolic},
			}
			assert.Equal(t, tc.want, q.BloodPressureStatus())
		})
	}
}

func TestHeartRateStatus(t *testing.T) {
	cases := []struct {
		name string
		hr   *int
		want string
	}{
		{"no reading", nil, HRStatusUnknown},
		{"bradycardia", intPtr(55), HRStatusBradycardia},
		{"lower normal bound", intPtr(60), HRStatusNormal},
		{"upper normal bound", intPtr(100), HRStatusNormal},
		{"tachycardia", intPtr(101), HRStatusTachycardia},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &HealthQuestionnaire{RestingHeartRate: tc.hr}
			assert.Equal(t, tc.want, q.HeartRateStatus())
		})
	}
}

func TestRecommendationsOrder(t *testing.T) {
	q := NewQuestionnaireShell(primitive.NewObjectID())
	q.HeartProblems = AnswerYes
	q.ChestPainDuringExercise = AnswerYes
	q.JointProblems = AnswerYes
	q.HasAllergies = AnswerYes
	q.AllergiesDetails = "shellfish"
	q.CalculateRiskScore()

	recs := q.Recommendations()

	assert.Equal(t, []string{
		"Medical consultation recommended before starting an exercise program",
		"Avoid high-intensity exercise",
		"Medical supervision during exercise",
		"Avoid high-impact exercise",
		"Prefer pool-based or low-impact exercise",
		"Inform the medical team about your allergies",
		"Have an emergency plan in case of an allergic reaction",
	}, recs)
}

func TestRecommendationsLowRisk(t *testing.T) {
	q := NewQuestionnaireShell(primitive.NewObjectID())
	q.CalculateRiskScore()

	recs := q.Recommendations()

	assert.Equal(t, []string{
		"Standard exercise program recommended",
		"Gradual progression of intensity",
	}, recs)
}

func TestRecommendationsModerateRisk(t *testing.T) {
	q := NewQuestionnaireShell(primitive.NewObjectID())
	q.DizzinessOrFainting = AnswerYes
	q.Type1Diabetes = AnswerYes
	q.CalculateRiskScore()

	recs := q.Recommendations()

	assert.Len(t, recs, 3)
	assert.Equal(t, "Medical consultation suggested", recs[0])
}
