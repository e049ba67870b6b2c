package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCalculateTotalDurationExplicitWins(t *testing.T) {
	w := &Workout{
		Duration: intPtr(1800),
		Exercises: []WorkoutExercise{
			{Sets: intPtr(5), Duration: intPtr(600), Rest: intPtr(120)},
		},
	}

	// The explicit value is returned as-is, in seconds, no conversion.
	assert.Equal(t, 1800, w.CalculateTotalDuration())
}

func TestCalculateTotalDurationFromEntries(t *testing.T) {
	w := &Workout{
		Exercises: []WorkoutExercise{
			// 3 sets of 45s with 60s rest: 135 + 120 = 255s.
			{Sets: intPtr(3), Duration: intPtr(45), Rest: intPtr(60)},
			// Single set contributes no rest: 90s.
			{Sets: intPtr(1), Duration: intPtr(90), Rest: intPtr(60)},
		},
	}

	// 345 seconds rounds up to 6 minutes.
	assert.Equal(t, 6, w.CalculateTotalDuration())
}

func TestCalculateTotalDurationSkipsIncompleteEntries(t *testing.T) {
	w := &Workout{
		Exercises: []WorkoutExercise{
			{Sets: intPtr(3), Repetitions: intPtr(12)},  // no duration
			{Duration: intPtr(120), Rest: intPtr(30)},   // no sets
			{Sets: intPtr(2), Duration: intPtr(30)},     // 60s, no rest given
		},
	}

	assert.Equal(t, 1, w.CalculateTotalDuration())
}

func TestCalculateTotalDurationEmptyWorkout(t *testing.T) {
	w := &Workout{}
	assert.Equal(t, 0, w.CalculateTotalDuration())
}

func TestCalculateTotalDurationCeilingDivision(t *testing.T) {
	w := &Workout{
		Exercises: []WorkoutExercise{
			{Sets: intPtr(1), Duration: intPtr(61)},
		},
	}

	assert.Equal(t, 2, w.CalculateTotalDuration())
}

func TestWorkoutVisibleTo(t *testing.T) {
	owner := primitive.NewObjectID()
	assignee := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	w := &Workout{
		CreatedBy:  owner,
		AssignedTo: []primitive.ObjectID{assignee},
	}

	assert.True(t, w.VisibleTo(owner))
	assert.True(t, w.VisibleTo(assignee))
	assert.False(t, w.VisibleTo(stranger))

	w.IsPublic = true
	assert.True(t, w.VisibleTo(stranger))
}

func TestWorkoutExerciseEntryName(t *testing.T) {
	embedded := WorkoutExercise{Exercise: ExerciseDetail{Name: "Burpees"}}
	assert.False(t, embedded.IsReferenced())
	assert.Equal(t, "Burpees", embedded.EntryName())

	id := primitive.NewObjectID()
	referenced := WorkoutExercise{ExerciseID: &id, ResolvedName: "Deadlift"}
	assert.True(t, referenced.IsReferenced())
	assert.Equal(t, "Deadlift", referenced.EntryName())
}
