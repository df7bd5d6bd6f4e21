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

const clientCollectionName = "clients"

// mongoClientRepository implements repository.ClientRepository.
type mongoClientRepository struct {
	*ownedCollection[domain.Client]
}

// NewMongoClientRepository creates a new Client repository backed by MongoDB.
func NewMongoClientRepository(db *mongo.Database) repository.ClientRepository {
	return &mongoClientRepository{
		ownedCollection: newOwnedCollection[domain.Client](db, clientCollectionName, "trainerId"),
	}
}

// Create inserts a new client. TrainerID must already be stamped by the
// service with the caller's identity.
func (r *mongoClientRepository) Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error) {
	if client.Name == "" || client.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("client name and trainer ID are required")
	}

	client.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	return r.insert(ctx, client)
}
