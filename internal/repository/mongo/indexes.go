package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes every collection needs. Called once
// during startup; failures are returned so the caller can decide whether to
// log or abort.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureUserIndexes(ctx, db.Collection(userCollectionName)); err != nil {
		return err
	}
	if err := EnsureSessionIndexes(ctx, db.Collection(sessionCollectionName)); err != nil {
		return err
	}

	// Tenant-scoped collections all query by trainerId plus createdAt sort.
	owned := []string{
		clientCollectionName,
		planCollectionName,
		classCollectionName,
		assessmentCollectionName,
		transactionCollectionName,
		historyCollectionName,
		progressCollectionName,
	}
	for _, name := range owned {
		index := mongo.IndexModel{
			Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
		}
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, index); err != nil {
			return err
		}
	}

	// Cancellation deletes ledger entries by class reference.
	classRef := mongo.IndexModel{
		Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "classId", Value: 1}},
	}
	if _, err := db.Collection(transactionCollectionName).Indexes().CreateOne(ctx, classRef); err != nil {
		return err
	}

	// Message visibility scope.
	for _, key := range []string{"senderId", "recipientId"} {
		index := mongo.IndexModel{
			Keys: bson.D{{Key: key, Value: 1}, {Key: "createdAt", Value: -1}},
		}
		if _, err := db.Collection(messageCollectionName).Indexes().CreateOne(ctx, index); err != nil {
			return err
		}
	}

	return nil
}
