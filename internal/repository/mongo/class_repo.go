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

const classCollectionName = "scheduled_classes"

// mongoClassRepository implements repository.ClassRepository.
type mongoClassRepository struct {
	*ownedCollection[domain.ScheduledClass]
}

// NewMongoClassRepository creates a new ScheduledClass repository backed by MongoDB.
func NewMongoClassRepository(db *mongo.Database) repository.ClassRepository {
	return &mongoClassRepository{
		ownedCollection: newOwnedCollection[domain.ScheduledClass](db, classCollectionName, "trainerId"),
	}
}

// Create inserts a new scheduled class.
func (r *mongoClassRepository) Create(ctx context.Context, class *domain.ScheduledClass) (primitive.ObjectID, error) {
	if class.TrainerID == primitive.NilObjectID || class.StartsAt.IsZero() {
		return primitive.NilObjectID, errors.New("class trainer ID and start time are required")
	}

	class.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now

	return r.insert(ctx, class)
}

// MarkCheckIn flips one roster entry to checked-in and records time,
// location, and the billed rate. The filter requires the entry to be
// un-checked-in: a concurrent duplicate check-in matches zero documents and
// gets ErrNotFound, which is what prevents double billing.
func (r *mongoClassRepository) MarkCheckIn(ctx context.Context, ownerID, classID, clientID primitive.ObjectID, at time.Time, location string, rate float64) error {
	filter := bson.M{
		"_id":       classID,
		"trainerId": ownerID,
		"roster": bson.M{"$elemMatch": bson.M{
			"clientId":    clientID,
			"checkinDone": false,
		}},
	}
	update := bson.M{"$set": bson.M{
		"roster.$.checkinDone": true,
		"roster.$.checkinAt":   at,
		"roster.$.location":    location,
		"roster.$.billedRate":  rate,
		"updatedAt":            time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateStatus transitions the class lifecycle status.
func (r *mongoClassRepository) UpdateStatus(ctx context.Context, ownerID, classID primitive.ObjectID, status domain.ClassStatus) error {
	filter := bson.M{"_id": classID, "trainerId": ownerID}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
