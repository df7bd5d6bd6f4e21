package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const planCollectionName = "workout_plans"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	*ownedCollection[domain.WorkoutPlan]
}

// NewMongoPlanRepository creates a new WorkoutPlan repository backed by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		ownedCollection: newOwnedCollection[domain.WorkoutPlan](db, planCollectionName, "trainerId"),
	}
}

// Create inserts a new workout plan.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.Name == "" || plan.TrainerID == primitive.NilObjectID || plan.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan name, trainer ID, and client ID are required")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	return r.insert(ctx, plan)
}

// DeleteByClientID removes all plans for a client, used when the client is
// deleted.
func (r *mongoPlanRepository) DeleteByClientID(ctx context.Context, ownerID, clientID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"trainerId": ownerID, "clientId": clientID})
	return err
}
