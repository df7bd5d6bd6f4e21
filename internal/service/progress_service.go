package service

import (
	"context"
	"errors"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAssessmentNotFound = apperrors.New(apperrors.KindNotFound, "assessment not found")
	ErrProgressNotFound   = apperrors.New(apperrors.KindNotFound, "progress entry not found")
)

// ProgressService manages body assessments and freeform progress entries
// for a trainer's clients.
type ProgressService interface {
	ListAssessments(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.Assessment, error)
	FilterAssessments(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.Assessment, error)
	GetAssessment(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.Assessment, error)
	CreateAssessment(ctx context.Context, trainerID primitive.ObjectID, a *domain.Assessment) (*domain.Assessment, error)
	UpdateAssessment(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.Assessment, error)
	DeleteAssessment(ctx context.Context, trainerID, id primitive.ObjectID) error

	ListProgress(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.ProgressEntry, error)
	FilterProgress(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.ProgressEntry, error)
	GetProgress(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.ProgressEntry, error)
	CreateProgress(ctx context.Context, trainerID primitive.ObjectID, e *domain.ProgressEntry) (*domain.ProgressEntry, error)
	UpdateProgress(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.ProgressEntry, error)
	DeleteProgress(ctx context.Context, trainerID, id primitive.ObjectID) error
}

type progressService struct {
	assessmentRepo repository.AssessmentRepository
	progressRepo   repository.ProgressRepository
	clientRepo     repository.ClientRepository
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(assessmentRepo repository.AssessmentRepository, progressRepo repository.ProgressRepository, clientRepo repository.ClientRepository) ProgressService {
	return &progressService{
		assessmentRepo: assessmentRepo,
		progressRepo:   progressRepo,
		clientRepo:     clientRepo,
	}
}

var assessmentUpdateFields = map[string]bool{
	"takenAt":      true,
	"weightKg":     true,
	"bodyFatPct":   true,
	"measurements": true,
	"notes":        true,
}

var assessmentFilterFields = map[string]bool{
	"clientId": true,
}

var progressUpdateFields = map[string]bool{
	"kind":         true,
	"weightKg":     true,
	"bodyFatPct":   true,
	"leanMassKg":   true,
	"measurements": true,
	"performance":  true,
	"notes":        true,
	"goals":        true,
	"recordedAt":   true,
}

var progressFilterFields = map[string]bool{
	"clientId": true,
	"kind":     true,
}

// InferProgressKind classifies an entry that arrived without an explicit
// kind. Older records carried no discriminator, so the variant is read off
// whichever payload section is populated. Body-composition numbers win over
// measurements, measurements over performance data, and anything that is
// text-only lands on physical-assessment.
func InferProgressKind(e *domain.ProgressEntry) domain.ProgressKind {
	if e.WeightKg != nil || e.BodyFatPct != nil || e.LeanMassKg != nil {
		return domain.ProgressWeight
	}
	if len(e.Measurements) > 0 {
		return domain.ProgressMeasurements
	}
	if len(e.Performance) > 0 {
		return domain.ProgressPerformance
	}
	return domain.ProgressPhysicalAssessment
}

// --- Assessments ---

func (s *progressService) ListAssessments(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.Assessment, error) {
	return s.assessmentRepo.List(ctx, trainerID, order)
}

func (s *progressService) FilterAssessments(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.Assessment, error) {
	eq, err := sanitizeFilter(payload, assessmentFilterFields)
	if err != nil {
		return nil, err
	}
	if err := coerceObjectID(eq, "clientId"); err != nil {
		return nil, err
	}
	return s.assessmentRepo.Filter(ctx, trainerID, eq, order)
}

func (s *progressService) GetAssessment(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.Assessment, error) {
	a, err := s.assessmentRepo.Get(ctx, trainerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *progressService) CreateAssessment(ctx context.Context, trainerID primitive.ObjectID, a *domain.Assessment) (*domain.Assessment, error) {
	if err := s.requireClient(ctx, trainerID, a.ClientID); err != nil {
		return nil, err
	}

	a.TrainerID = trainerID
	if a.TakenAt.IsZero() {
		a.TakenAt = time.Now().UTC()
	}

	id, err := s.assessmentRepo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

func (s *progressService) UpdateAssessment(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.Assessment, error) {
	set, unset := sanitizeUpdate(payload, assessmentUpdateFields)
	if err := coerceTime(set, "takenAt"); err != nil {
		return nil, err
	}

	if err := s.assessmentRepo.Update(ctx, trainerID, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return s.GetAssessment(ctx, trainerID, id)
}

func (s *progressService) DeleteAssessment(ctx context.Context, trainerID, id primitive.ObjectID) error {
	if err := s.assessmentRepo.Delete(ctx, trainerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssessmentNotFound
		}
		return err
	}
	return nil
}

// --- Progress entries ---

func (s *progressService) ListProgress(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.ProgressEntry, error) {
	return s.progressRepo.List(ctx, trainerID, order)
}

func (s *progressService) FilterProgress(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.ProgressEntry, error) {
	eq, err := sanitizeFilter(payload, progressFilterFields)
	if err != nil {
		return nil, err
	}
	if err := coerceObjectID(eq, "clientId"); err != nil {
		return nil, err
	}
	return s.progressRepo.Filter(ctx, trainerID, eq, order)
}

func (s *progressService) GetProgress(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.ProgressEntry, error) {
	e, err := s.progressRepo.Get(ctx, trainerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *progressService) CreateProgress(ctx context.Context, trainerID primitive.ObjectID, e *domain.ProgressEntry) (*domain.ProgressEntry, error) {
	if err := s.requireClient(ctx, trainerID, e.ClientID); err != nil {
		return nil, err
	}

	e.TrainerID = trainerID
	if e.Kind == "" {
		e.Kind = InferProgressKind(e)
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}

	id, err := s.progressRepo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return e, nil
}

func (s *progressService) UpdateProgress(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.ProgressEntry, error) {
	set, unset := sanitizeUpdate(payload, progressUpdateFields)
	if err := coerceTime(set, "recordedAt"); err != nil {
		return nil, err
	}

	if err := s.progressRepo.Update(ctx, trainerID, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return s.GetProgress(ctx, trainerID, id)
}

func (s *progressService) DeleteProgress(ctx context.Context, trainerID, id primitive.ObjectID) error {
	if err := s.progressRepo.Delete(ctx, trainerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgressNotFound
		}
		return err
	}
	return nil
}

func (s *progressService) requireClient(ctx context.Context, trainerID, clientID primitive.ObjectID) error {
	if _, err := s.clientRepo.Get(ctx, trainerID, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}
