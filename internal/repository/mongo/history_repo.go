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

const historyCollectionName = "workout_history"

// mongoHistoryRepository implements repository.HistoryRepository.
type mongoHistoryRepository struct {
	*ownedCollection[domain.WorkoutHistory]
}

// NewMongoHistoryRepository creates a new WorkoutHistory repository backed by MongoDB.
func NewMongoHistoryRepository(db *mongo.Database) repository.HistoryRepository {
	return &mongoHistoryRepository{
		ownedCollection: newOwnedCollection[domain.WorkoutHistory](db, historyCollectionName, "trainerId"),
	}
}

// Create inserts a new workout execution record.
func (r *mongoHistoryRepository) Create(ctx context.Context, record *domain.WorkoutHistory) (primitive.ObjectID, error) {
	if record.TrainerID == primitive.NilObjectID || record.ClientID == primitive.NilObjectID || record.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("history trainer ID, client ID, and plan ID are required")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if record.PerformedAt.IsZero() {
		record.PerformedAt = now
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	return r.insert(ctx, record)
}
