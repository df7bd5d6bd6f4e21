package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assessment is a point-in-time physical measurement snapshot for a client.
// Measurements holds named circumferences/skinfolds in whatever units the
// trainer records ("waistCm": 82.5).
type Assessment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID    primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	ClientID     primitive.ObjectID `bson:"clientId" json:"clientId"`
	TakenAt      time.Time          `bson:"takenAt" json:"takenAt"`
	WeightKg     float64            `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	BodyFatPct   float64            `bson:"bodyFatPct,omitempty" json:"bodyFatPct,omitempty"`
	Measurements map[string]float64 `bson:"measurements,omitempty" json:"measurements,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
