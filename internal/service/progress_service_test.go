package service

import (
	"context"
	"testing"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProgressFixture() (ProgressService, *fakeClientRepo) {
	clientRepo := newFakeClientRepo()
	return NewProgressService(newFakeAssessmentRepo(), newFakeProgressRepo(), clientRepo), clientRepo
}

func seedOwnedClient(t *testing.T, clientRepo *fakeClientRepo, trainer primitive.ObjectID) primitive.ObjectID {
	t.Helper()
	id, err := clientRepo.Create(context.Background(), &domain.Client{
		TrainerID: trainer,
		Name:      "Ana",
	})
	require.NoError(t, err)
	return id
}

func floatPtr(v float64) *float64 { return &v }

func TestInferProgressKind(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.ProgressEntry
		want  domain.ProgressKind
	}{
		{
			name:  "weight field wins",
			entry: domain.ProgressEntry{WeightKg: floatPtr(80)},
			want:  domain.ProgressWeight,
		},
		{
			name:  "body fat alone is still weight",
			entry: domain.ProgressEntry{BodyFatPct: floatPtr(18)},
			want:  domain.ProgressWeight,
		},
		{
			name:  "lean mass alone is still weight",
			entry: domain.ProgressEntry{LeanMassKg: floatPtr(62)},
			want:  domain.ProgressWeight,
		},
		{
			name: "weight beats measurements",
			entry: domain.ProgressEntry{
				WeightKg:     floatPtr(80),
				Measurements: map[string]float64{"waistCm": 82},
			},
			want: domain.ProgressWeight,
		},
		{
			name:  "measurements",
			entry: domain.ProgressEntry{Measurements: map[string]float64{"waistCm": 82}},
			want:  domain.ProgressMeasurements,
		},
		{
			name: "measurements beat performance",
			entry: domain.ProgressEntry{
				Measurements: map[string]float64{"waistCm": 82},
				Performance:  []domain.PerformanceResult{{Exercise: "squat"}},
			},
			want: domain.ProgressMeasurements,
		},
		{
			name:  "performance",
			entry: domain.ProgressEntry{Performance: []domain.PerformanceResult{{Exercise: "squat", Value: 120, Unit: "kg"}}},
			want:  domain.ProgressPerformance,
		},
		{
			name:  "text only is a physical assessment",
			entry: domain.ProgressEntry{Notes: "feeling better", Goals: "run 10k"},
			want:  domain.ProgressPhysicalAssessment,
		},
		{
			name:  "empty defaults to physical assessment",
			entry: domain.ProgressEntry{},
			want:  domain.ProgressPhysicalAssessment,
		},
		{
			name:  "zero weight still counts as present",
			entry: domain.ProgressEntry{WeightKg: floatPtr(0)},
			want:  domain.ProgressWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferProgressKind(&tt.entry))
		})
	}
}

func TestCreateProgressInfersMissingKind(t *testing.T) {
	svc, clientRepo := newProgressFixture()
	trainer := primitive.NewObjectID()
	clientID := seedOwnedClient(t, clientRepo, trainer)

	created, err := svc.CreateProgress(context.Background(), trainer, &domain.ProgressEntry{
		ClientID: clientID,
		WeightKg: floatPtr(79.5),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressWeight, created.Kind)
	assert.False(t, created.RecordedAt.IsZero())
}

func TestCreateProgressKeepsExplicitKind(t *testing.T) {
	svc, clientRepo := newProgressFixture()
	trainer := primitive.NewObjectID()
	clientID := seedOwnedClient(t, clientRepo, trainer)

	// An explicit kind is taken at face value even when the payload shape
	// suggests another variant.
	created, err := svc.CreateProgress(context.Background(), trainer, &domain.ProgressEntry{
		ClientID: clientID,
		Kind:     domain.ProgressPhysicalAssessment,
		WeightKg: floatPtr(79.5),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressPhysicalAssessment, created.Kind)
}

func TestCreateProgressForeignClient(t *testing.T) {
	svc, clientRepo := newProgressFixture()
	clientID := seedOwnedClient(t, clientRepo, primitive.NewObjectID())

	_, err := svc.CreateProgress(context.Background(), primitive.NewObjectID(), &domain.ProgressEntry{
		ClientID: clientID,
		Notes:    "hi",
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreateAssessmentDefaultsTakenAt(t *testing.T) {
	svc, clientRepo := newProgressFixture()
	trainer := primitive.NewObjectID()
	clientID := seedOwnedClient(t, clientRepo, trainer)

	before := time.Now().UTC()
	created, err := svc.CreateAssessment(context.Background(), trainer, &domain.Assessment{
		ClientID: clientID,
		WeightKg: 81,
	})
	require.NoError(t, err)
	assert.False(t, created.TakenAt.Before(before))
	assert.Equal(t, trainer, created.TrainerID)
}

func TestCreateAssessmentForeignClient(t *testing.T) {
	svc, clientRepo := newProgressFixture()
	clientID := seedOwnedClient(t, clientRepo, primitive.NewObjectID())

	_, err := svc.CreateAssessment(context.Background(), primitive.NewObjectID(), &domain.Assessment{
		ClientID: clientID,
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
}
