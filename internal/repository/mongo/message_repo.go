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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messageCollectionName = "messages"

// mongoMessageRepository implements repository.MessageRepository. Messages
// use a sender-or-recipient scope instead of the trainer-ownership scope,
// so this repository does not sit on the generic owned core.
type mongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new Message repository backed by MongoDB.
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	return &mongoMessageRepository{
		collection: db.Collection(messageCollectionName),
	}
}

func (r *mongoMessageRepository) scope(userID primitive.ObjectID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"senderId": userID},
		bson.M{"recipientId": userID},
	}}
}

func (r *mongoMessageRepository) find(ctx context.Context, filter bson.M, order int) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: normalizeOrder(order)}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []domain.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *mongoMessageRepository) List(ctx context.Context, userID primitive.ObjectID, order int) ([]domain.Message, error) {
	return r.find(ctx, r.scope(userID), order)
}

func (r *mongoMessageRepository) Filter(ctx context.Context, userID primitive.ObjectID, eq repository.Fields, order int) ([]domain.Message, error) {
	filter := r.scope(userID)
	for key, value := range eq {
		filter[key] = value
	}
	return r.find(ctx, filter, order)
}

func (r *mongoMessageRepository) Get(ctx context.Context, userID, id primitive.ObjectID) (*domain.Message, error) {
	filter := r.scope(userID)
	filter["_id"] = id

	var message domain.Message
	err := r.collection.FindOne(ctx, filter).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// Create inserts a new message.
func (r *mongoMessageRepository) Create(ctx context.Context, message *domain.Message) (primitive.ObjectID, error) {
	if message.SenderID == primitive.NilObjectID || message.RecipientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("message sender and recipient are required")
	}

	message.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	message.CreatedAt = now
	message.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoMessageRepository) Update(ctx context.Context, userID, id primitive.ObjectID, set repository.Fields, unset []string) error {
	filter := r.scope(userID)
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

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoMessageRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	filter := r.scope(userID)
	filter["_id"] = id

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
