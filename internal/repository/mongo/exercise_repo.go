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

const exerciseCollectionName = "exercise_library"

// mongoExerciseRepository implements repository.ExerciseRepository. The
// library is a shared catalog, so the generic core runs with an empty
// ownership field and the interface drops the owner parameter.
type mongoExerciseRepository struct {
	core *ownedCollection[domain.Exercise]
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		core: newOwnedCollection[domain.Exercise](db, exerciseCollectionName, ""),
	}
}

func (r *mongoExerciseRepository) List(ctx context.Context, order int) ([]domain.Exercise, error) {
	return r.core.List(ctx, primitive.NilObjectID, order)
}

func (r *mongoExerciseRepository) Filter(ctx context.Context, eq repository.Fields, order int) ([]domain.Exercise, error) {
	return r.core.Filter(ctx, primitive.NilObjectID, eq, order)
}

func (r *mongoExerciseRepository) Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return r.core.Get(ctx, primitive.NilObjectID, id)
}

// Create inserts a new exercise template.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise name is required")
	}

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	return r.core.insert(ctx, exercise)
}

func (r *mongoExerciseRepository) Update(ctx context.Context, id primitive.ObjectID, set repository.Fields, unset []string) error {
	return r.core.Update(ctx, primitive.NilObjectID, id, set, unset)
}

func (r *mongoExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.core.Delete(ctx, primitive.NilObjectID, id)
}
