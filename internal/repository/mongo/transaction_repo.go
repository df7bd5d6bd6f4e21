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

const transactionCollectionName = "transactions"

// mongoTransactionRepository implements repository.TransactionRepository.
type mongoTransactionRepository struct {
	*ownedCollection[domain.Transaction]
}

// NewMongoTransactionRepository creates a new Transaction repository backed by MongoDB.
func NewMongoTransactionRepository(db *mongo.Database) repository.TransactionRepository {
	return &mongoTransactionRepository{
		ownedCollection: newOwnedCollection[domain.Transaction](db, transactionCollectionName, "trainerId"),
	}
}

// Create inserts a new ledger entry.
func (r *mongoTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (primitive.ObjectID, error) {
	if tx.TrainerID == primitive.NilObjectID || tx.Kind == "" {
		return primitive.NilObjectID, errors.New("transaction trainer ID and kind are required")
	}

	tx.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = now
	}
	tx.CreatedAt = now
	tx.UpdatedAt = now

	return r.insert(ctx, tx)
}

// DeleteByClassID removes every ledger entry referencing a class. Used as
// the compensating action when a class is canceled.
func (r *mongoTransactionRepository) DeleteByClassID(ctx context.Context, ownerID, classID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"trainerId": ownerID, "classId": classID})
	return err
}

// BalanceForClient sums the signed amounts of a client's ledger entries.
// Charges are positive and payments negative, so the sum is the outstanding
// balance.
func (r *mongoTransactionRepository) BalanceForClient(ctx context.Context, ownerID, clientID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"trainerId": ownerID, "clientId": clientID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
