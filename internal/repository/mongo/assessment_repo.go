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

const assessmentCollectionName = "assessments"

// mongoAssessmentRepository implements repository.AssessmentRepository.
type mongoAssessmentRepository struct {
	*ownedCollection[domain.Assessment]
}

// NewMongoAssessmentRepository creates a new Assessment repository backed by MongoDB.
func NewMongoAssessmentRepository(db *mongo.Database) repository.AssessmentRepository {
	return &mongoAssessmentRepository{
		ownedCollection: newOwnedCollection[domain.Assessment](db, assessmentCollectionName, "trainerId"),
	}
}

// Create inserts a new assessment snapshot.
func (r *mongoAssessmentRepository) Create(ctx context.Context, assessment *domain.Assessment) (primitive.ObjectID, error) {
	if assessment.TrainerID == primitive.NilObjectID || assessment.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assessment trainer ID and client ID are required")
	}

	assessment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if assessment.TakenAt.IsZero() {
		assessment.TakenAt = now
	}
	assessment.CreatedAt = now
	assessment.UpdatedAt = now

	return r.insert(ctx, assessment)
}
