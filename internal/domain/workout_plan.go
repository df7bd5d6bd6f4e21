package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanExercise is one prescribed exercise inside a workout plan. Reps and
// rest stay free-form strings ("8-12", "60s") to match how trainers write
// them.
type PlanExercise struct {
	Name  string `bson:"name" json:"name"`
	Sets  int    `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps  string `bson:"reps,omitempty" json:"reps,omitempty"`
	Rest  string `bson:"rest,omitempty" json:"rest,omitempty"`
	Group string `bson:"group,omitempty" json:"group,omitempty"` // Superset/circuit grouping label
}

// WorkoutPlan is an ordered exercise prescription for one client.
type WorkoutPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Denormalized for tenant scoping
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []PlanExercise     `bson:"exercises,omitempty" json:"exercises,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
