package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType classifies a workout.
type WorkoutType string

const (
	WorkoutStrength    WorkoutType = "strength"
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutMixed       WorkoutType = "mixed"
	WorkoutCustom      WorkoutType = "custom"
)

// Difficulty grades a workout or exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ExerciseEntry is the accessor contract shared by the embedded and the
// referenced storage strategies for exercises inside a workout. Duration
// aggregation and session ordering work only through these accessors, so
// switching (or mixing) strategies is invisible to them.
type ExerciseEntry interface {
	EntryName() string
	SetCount() int
	RepCount() int
	DurationSeconds() int
	RestSeconds() int
	Position() int
}

// ExerciseDetail is the inline exercise description carried by an
// embedded entry.
type ExerciseDetail struct {
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Category    string     `bson:"category,omitempty" json:"category,omitempty"`
	Difficulty  Difficulty `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	GifURL      string     `bson:"gifUrl,omitempty" json:"gifUrl,omitempty"`
}

// WorkoutExercise is one exercise slot inside a workout. It is a tagged
// variant: either Exercise carries the full inline detail (embedded), or
// ExerciseID references the exercise library (referenced). ResolvedName is
// filled at read time for referenced entries and never stored.
type WorkoutExercise struct {
	Exercise     ExerciseDetail      `bson:"exercise,omitempty" json:"exercise,omitempty"`
	ExerciseID   *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	ResolvedName string              `bson:"-" json:"-"`

	Sets        *int     `bson:"sets,omitempty" json:"sets,omitempty"`
	Repetitions *int     `bson:"repetitions,omitempty" json:"repetitions,omitempty"`
	Weight      *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration    *int     `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	Rest        *int     `bson:"rest,omitempty" json:"rest,omitempty"`         // seconds
	Notes       string   `bson:"notes,omitempty" json:"notes,omitempty"`
	Order       int      `bson:"order,omitempty" json:"order,omitempty"`
}

// IsReferenced reports whether the entry points into the exercise library
// instead of carrying its detail inline.
func (e WorkoutExercise) IsReferenced() bool { return e.ExerciseID != nil }

func (e WorkoutExercise) EntryName() string {
	if e.IsReferenced() {
		return e.ResolvedName
	}
	return e.Exercise.Name
}

func (e WorkoutExercise) SetCount() int {
	if e.Sets == nil {
		return 0
	}
	return *e.Sets
}

func (e WorkoutExercise) RepCount() int {
	if e.Repetitions == nil {
		return 0
	}
	return *e.Repetitions
}

func (e WorkoutExercise) DurationSeconds() int {
	if e.Duration == nil {
		return 0
	}
	return *e.Duration
}

func (e WorkoutExercise) RestSeconds() int {
	if e.Rest == nil {
		return 0
	}
	return *e.Rest
}

func (e WorkoutExercise) Position() int { return e.Order }

// Workout is a named list of exercise entries authored by a coach. When
// SessionID is set the workout belongs to that session and Order is its
// position among the session's workouts.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        WorkoutType        `bson:"type" json:"type"`
	Difficulty  Difficulty         `bson:"difficulty" json:"difficulty"`

	// Duration is the explicit total in seconds. When set it always wins
	// over the value computed from the exercise entries.
	Duration  *int              `bson:"duration,omitempty" json:"duration,omitempty"`
	Exercises []WorkoutExercise `bson:"exercises,omitempty" json:"exercises"`

	GifURL   string `bson:"gifUrl,omitempty" json:"gifUrl,omitempty"`
	IsActive bool   `bson:"isActive" json:"isActive"`
	IsPublic bool   `bson:"isPublic" json:"isPublic"`

	CreatedBy  primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo []primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Tags       []string             `bson:"tags,omitempty" json:"tags,omitempty"`

	SessionID *primitive.ObjectID `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	Order     int                 `bson:"order,omitempty" json:"order,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Entries returns the exercise slots behind the shared accessor contract.
func (w *Workout) Entries() []ExerciseEntry {
	entries := make([]ExerciseEntry, len(w.Exercises))
	for i, e := range w.Exercises {
		entries[i] = e
	}
	return entries
}

// CalculateTotalDuration returns the workout's total duration. An explicit
// Duration is returned unchanged. Otherwise each entry contributes
// duration*sets plus rest*(sets-1) seconds; an entry with a single set
// contributes no rest time, and an entry missing duration or sets
// contributes nothing. The accumulated seconds are converted to minutes by
// ceiling division. This is an on-demand query; it never runs on save.
func (w *Workout) CalculateTotalDuration() int {
	if w.Duration != nil && *w.Duration > 0 {
		return *w.Duration
	}
	return TotalDurationMinutes(w.Entries())
}

// TotalDurationMinutes aggregates exercise entries into whole minutes.
func TotalDurationMinutes(entries []ExerciseEntry) int {
	total := 0
	for _, e := range entries {
		sets := e.SetCount()
		if d := e.DurationSeconds(); d > 0 && sets > 0 {
			total += d * sets
		}
		if r := e.RestSeconds(); r > 0 && sets > 1 {
			total += r * (sets - 1)
		}
	}
	return int(math.Ceil(float64(total) / 60))
}

// VisibleTo reports whether a plain user may read this workout: it must be
// public, created by them, or assigned to them. Coaches and admins bypass
// this check at the service layer.
func (w *Workout) VisibleTo(userID primitive.ObjectID) bool {
	if w.IsPublic || w.CreatedBy == userID {
		return true
	}
	for _, id := range w.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}
