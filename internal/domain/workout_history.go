package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseResult records what the client actually performed for one
// exercise of a plan.
type ExerciseResult struct {
	Name     string `bson:"name" json:"name"`
	SetsDone int    `bson:"setsDone,omitempty" json:"setsDone,omitempty"`
	RepsDone string `bson:"repsDone,omitempty" json:"repsDone,omitempty"`
	Load     string `bson:"load,omitempty" json:"load,omitempty"` // Free-form: "40kg", "band red"
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutHistory is an execution record of a workout plan by a client, with
// a 1-10 subjective effort/quality rating.
type WorkoutHistory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	PerformedAt time.Time          `bson:"performedAt" json:"performedAt"`
	Results     []ExerciseResult   `bson:"results,omitempty" json:"results,omitempty"`
	Rating      int                `bson:"rating,omitempty" json:"rating,omitempty"` // 1-10
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
