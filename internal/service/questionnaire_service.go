package service

import (
	"context"
	"errors"
	"fmt"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrQuestionnaireAccess = errors.New("not allowed to access this questionnaire")
)

// QuestionnaireInput carries the client-supplied questionnaire fields.
// Derived fields are absent on purpose; the service recomputes them.
type QuestionnaireInput struct {
	BloodPressure     domain.BloodPressure
	RestingHeartRate  *int
	CardioTest        *int
	PushupsPerMinute  *int
	SitupsPerMinute   *int
	Stretching        *float64
	BodyFatPercentage *float64
	BodyWeight        *float64

	HeartProblems                  domain.Answer
	ChestPainDuringExercise        domain.Answer
	ChestPainLastMonth             domain.Answer
	DizzinessOrFainting            domain.Answer
	JointProblems                  domain.Answer
	BloodPressureOrHeartMedication domain.Answer
	Type1Diabetes                  domain.Answer
	OtherExerciseRestrictions      domain.Answer
	HasAllergies                   domain.Answer
	AllergiesDetails               string
}

// HealthSummary bundles the questionnaire with its evaluated statuses and
// recommendations for the assessment endpoint.
type HealthSummary struct {
	Questionnaire       *domain.HealthQuestionnaire `json:"questionnaire"`
	BloodPressureStatus string                      `json:"bloodPressureStatus"`
	HeartRateStatus     string                      `json:"heartRateStatus"`
	Recommendations     []string                    `json:"recommendations"`
}

// QuestionnaireService manages health questionnaires and their derived
// risk assessments.
type QuestionnaireService interface {
	// Get returns the stored questionnaire for userID, or an unsaved
	// shell with every answer defaulted to "no" when none exists yet.
	Get(ctx context.Context, actor Actor, userID primitive.ObjectID) (*domain.HealthQuestionnaire, error)
	// Save upserts the questionnaire keyed by userID and returns the
	// stored document with derived fields recomputed.
	Save(ctx context.Context, actor Actor, userID primitive.ObjectID, input QuestionnaireInput) (*domain.HealthQuestionnaire, error)
	// Assessment returns the questionnaire together with its status
	// classifications and recommendation list.
	Assessment(ctx context.Context, actor Actor, userID primitive.ObjectID) (*HealthSummary, error)
	// List returns questionnaires matching the filter. Coach and admin only.
	List(ctx context.Context, actor Actor, filter repository.QuestionnaireFilter) ([]domain.HealthQuestionnaire, error)
	// Delete removes a user's questionnaire. Admin only.
	Delete(ctx context.Context, actor Actor, userID primitive.ObjectID) error
}

type questionnaireService struct {
	questionnaireRepo repository.QuestionnaireRepository
	userRepo          repository.UserRepository
	notifier          Notifier
}

// NewQuestionnaireService creates a new instance of questionnaireService.
func NewQuestionnaireService(
	questionnaireRepo repository.QuestionnaireRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) QuestionnaireService {
	return &questionnaireService{
		questionnaireRepo: questionnaireRepo,
		userRepo:          userRepo,
		notifier:          notifier,
	}
}

// authorize resolves the target user and checks that the actor may read or
// write their questionnaire: the user themselves, an admin, or the coach
// currently assigned to the user.
func (s *questionnaireService) authorize(ctx context.Context, actor Actor, userID primitive.ObjectID) (*domain.User, error) {
	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actor.ID == userID || actor.IsAdmin() {
		return target, nil
	}
	if actor.IsCoach() && target.AssignedCoach != nil && *target.AssignedCoach == actor.ID {
		return target, nil
	}
	return nil, ErrQuestionnaireAccess
}

func (s *questionnaireService) Get(ctx context.Context, actor Actor, userID primitive.ObjectID) (*domain.HealthQuestionnaire, error) {
	if _, err := s.authorize(ctx, actor, userID); err != nil {
		return nil, err
	}

	q, err := s.questionnaireRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Nothing stored yet: hand back the default shell without
			// persisting it. It is saved on the first real submission.
			return domain.NewQuestionnaireShell(userID), nil
		}
		return nil, err
	}
	return q, nil
}

func (s *questionnaireService) Save(ctx context.Context, actor Actor, userID primitive.ObjectID, input QuestionnaireInput) (*domain.HealthQuestionnaire, error) {
	target, err := s.authorize(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	q := &domain.HealthQuestionnaire{
		UserID:            userID,
		BloodPressure:     input.BloodPressure,
		RestingHeartRate:  input.RestingHeartRate,
		CardioTest:        input.CardioTest,
		PushupsPerMinute:  input.PushupsPerMinute,
		SitupsPerMinute:   input.SitupsPerMinute,
		Stretching:        input.Stretching,
		BodyFatPercentage: input.BodyFatPercentage,
		BodyWeight:        input.BodyWeight,

		HeartProblems:                  input.HeartProblems,
		ChestPainDuringExercise:        input.ChestPainDuringExercise,
		ChestPainLastMonth:             input.ChestPainLastMonth,
		DizzinessOrFainting:            input.DizzinessOrFainting,
		JointProblems:                  input.JointProblems,
		BloodPressureOrHeartMedication: input.BloodPressureOrHeartMedication,
		Type1Diabetes:                  input.Type1Diabetes,
		OtherExerciseRestrictions:      input.OtherExerciseRestrictions,
		HasAllergies:                   input.HasAllergies,
		AllergiesDetails:               input.AllergiesDetails,
	}

	saved, err := s.questionnaireRepo.Upsert(ctx, q)
	if err != nil {
		return nil, err
	}

	// Tell the assigned coach when the user updates their own record.
	if actor.ID == userID && target.AssignedCoach != nil {
		s.notifier.Emit(ctx, domain.Notification{
			Recipient: *target.AssignedCoach,
			Sender:    &actor.ID,
			Type:      domain.NotifyHealthUpdated,
			Title:     "Health questionnaire updated",
			Message:   fmt.Sprintf("%s updated their health questionnaire", target.FullName()),
			Entity:    entityRef("questionnaire", saved.ID),
		})
	}

	return saved, nil
}

func (s *questionnaireService) Assessment(ctx context.Context, actor Actor, userID primitive.ObjectID) (*HealthSummary, error) {
	q, err := s.Get(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	return &HealthSummary{
		Questionnaire:       q,
		BloodPressureStatus: q.BloodPressureStatus(),
		HeartRateStatus:     q.HeartRateStatus(),
		Recommendations:     q.Recommendations(),
	}, nil
}

func (s *questionnaireService) List(ctx context.Context, actor Actor, filter repository.QuestionnaireFilter) ([]domain.HealthQuestionnaire, error) {
	if !actor.IsCoach() && !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.questionnaireRepo.List(ctx, filter)
}

func (s *questionnaireService) Delete(ctx context.Context, actor Actor, userID primitive.ObjectID) error {
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	err := s.questionnaireRepo.DeleteByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
