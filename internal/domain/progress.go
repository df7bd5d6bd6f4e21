package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressKind is the discriminator selecting which variant a progress
// entry represents.
type ProgressKind string

const (
	ProgressWeight             ProgressKind = "weight"
	ProgressMeasurements       ProgressKind = "measurements"
	ProgressPhysicalAssessment ProgressKind = "physical-assessment"
	ProgressPerformance        ProgressKind = "performance"
)

// PerformanceResult is one performance data point (a lift, a time, a
// distance) inside a performance-kind progress entry.
type PerformanceResult struct {
	Exercise string  `bson:"exercise" json:"exercise"`
	Value    float64 `bson:"value,omitempty" json:"value,omitempty"`
	Unit     string  `bson:"unit,omitempty" json:"unit,omitempty"`
	Notes    string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ProgressEntry is a freeform measurement record for a client. Weight
// fields are pointers so that "absent" and "zero" stay distinguishable;
// the kind-inference shim depends on that distinction.
type ProgressEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	Kind      ProgressKind       `bson:"kind" json:"kind"`

	WeightKg     *float64            `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	BodyFatPct   *float64            `bson:"bodyFatPct,omitempty" json:"bodyFatPct,omitempty"`
	LeanMassKg   *float64            `bson:"leanMassKg,omitempty" json:"leanMassKg,omitempty"`
	Measurements map[string]float64  `bson:"measurements,omitempty" json:"measurements,omitempty"`
	Performance  []PerformanceResult `bson:"performance,omitempty" json:"performance,omitempty"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Goals        string              `bson:"goals,omitempty" json:"goals,omitempty"`

	RecordedAt time.Time `bson:"recordedAt" json:"recordedAt"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
