package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const progressCollectionName = "progress_entries"

// mongoProgressRepository implements repository.ProgressRepository.
type mongoProgressRepository struct {
	*ownedCollection[domain.ProgressEntry]
}

// NewMongoProgressRepository creates a new ProgressEntry repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		ownedCollection: newOwnedCollection[domain.ProgressEntry](db, progressCollectionName, "trainerId"),
	}
}

// Create inserts a new progress entry. Kind must already be resolved (sent
// by the caller or inferred by the service shim).
func (r *mongoProgressRepository) Create(ctx context.Context, entry *domain.ProgressEntry) (primitive.ObjectID, error) {
	if entry.TrainerID == primitive.NilObjectID || entry.ClientID == primitive.NilObjectID || entry.Kind == "" {
		return primitive.NilObjectID, errors.New("progress trainer ID, client ID, and kind are required")
	}

	entry.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = now
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	return r.insert(ctx, entry)
}
