package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a reusable exercise template in the shared library. Unlike
// every other entity it is NOT tenant-scoped: all trainers read the same
// catalog, and only admins maintain it.
type Exercise struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	MuscleGroup   string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`
	ExecutionType string             `bson:"executionType,omitempty" json:"executionType,omitempty"` // e.g. "bodyweight", "machine", "free-weight"
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	VideoURL      string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`

	// MediaKey is the object-storage key of uploaded demo media. Internal
	// use only; responses carry a presigned URL instead.
	MediaKey string `bson:"mediaKey,omitempty" json:"-"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
