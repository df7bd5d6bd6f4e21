package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ownedCollection is the single generic CRUD core behind every
// trainer-scoped repository. The ownership filter is part of every query it
// issues, so a caller can never read or mutate a document outside the
// owner's scope — such documents simply report ErrNotFound.
type ownedCollection[T any] struct {
	coll  *mongo.Collection
	owner string // ownership field name; empty for global collections
}

func newOwnedCollection[T any](db *mongo.Database, name, ownerField string) *ownedCollection[T] {
	return &ownedCollection[T]{
		coll:  db.Collection(name),
		owner: ownerField,
	}
}

// scope returns the base filter every operation starts from.
func (c *ownedCollection[T]) scope(ownerID primitive.ObjectID) bson.M {
	if c.owner == "" {
		return bson.M{}
	}
	return bson.M{c.owner: ownerID}
}

func normalizeOrder(order int) int {
	if order == repository.OrderAsc {
		return repository.OrderAsc
	}
	return repository.OrderDesc
}

func (c *ownedCollection[T]) find(ctx context.Context, filter bson.M, order int) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: normalizeOrder(order)}})

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	// Callers rely on an empty (not nil) slice when nothing matches.
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// List returns all documents in the owner's scope, newest-first by default.
func (c *ownedCollection[T]) List(ctx context.Context, ownerID primitive.ObjectID, order int) ([]T, error) {
	return c.find(ctx, c.scope(ownerID), order)
}

// Filter is List with additional equality predicates. Predicates are applied
// on top of the ownership scope and can never replace it: a predicate on the
// ownership field itself is ignored.
func (c *ownedCollection[T]) Filter(ctx context.Context, ownerID primitive.ObjectID, eq repository.Fields, order int) ([]T, error) {
	filter := c.scope(ownerID)
	for key, value := range eq {
		if key == c.owner {
			continue
		}
		filter[key] = value
	}
	return c.find(ctx, filter, order)
}

// Get fetches one document by id inside the owner's scope.
func (c *ownedCollection[T]) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*T, error) {
	filter := c.scope(ownerID)
	filter["_id"] = id

	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// insert stores a fully-populated document. Id generation and timestamps are
// the typed repository's job, since the generic core cannot reach into T.
func (c *ownedCollection[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	result, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// Update applies a partial update inside the owner's scope. Keys in unset are
// removed from the document (the empty-string-means-absent normalization).
func (c *ownedCollection[T]) Update(ctx context.Context, ownerID, id primitive.ObjectID, set repository.Fields, unset []string) error {
	filter := c.scope(ownerID)
	filter["_id"] = id

	setDoc := bson.M{"updatedAt": time.Now().UTC()}
	for key, value := range set {
		setDoc[key] = value
	}
	update := bson.M{"$set": setDoc}

	if len(unset) > 0 {
		unsetDoc := bson.M{}
		for _, key := range unset {
			unsetDoc[key] = ""
		}
		update["$unset"] = unsetDoc
	}

	result, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes one document inside the owner's scope. Deleting an absent
// or non-owned document reports ErrNotFound, never a server error.
func (c *ownedCollection[T]) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	filter := c.scope(ownerID)
	filter["_id"] = id

	result, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
