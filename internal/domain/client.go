package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientStatus tracks whether a client is actively training.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client is a person managed by exactly one trainer (User). TrainerID is the
// tenant boundary: every record reachable from a Client carries it
// denormalized, and every query filters on it.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`

	// Physical baseline
	HeightCm  float64    `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg  float64    `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Sex       string     `bson:"sex,omitempty" json:"sex,omitempty"`
	BirthDate *time.Time `bson:"birthDate,omitempty" json:"birthDate,omitempty"`

	Goal            string       `bson:"goal,omitempty" json:"goal,omitempty"`
	Status          ClientStatus `bson:"status" json:"status"`
	DefaultRate     float64      `bson:"defaultRate,omitempty" json:"defaultRate,omitempty"` // Billed per completed class
	DefaultLocation string       `bson:"defaultLocation,omitempty" json:"defaultLocation,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
