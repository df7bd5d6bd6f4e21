package service

import (
	"context"
	"errors"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound    = apperrors.New(apperrors.KindNotFound, "workout plan not found")
	ErrHistoryNotFound = apperrors.New(apperrors.KindNotFound, "workout history record not found")
	ErrInvalidRating   = apperrors.New(apperrors.KindValidation, "rating must be between 1 and 10")
)

// TrainingService manages workout plans and their execution history.
type TrainingService interface {
	// Plans
	ListPlans(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.WorkoutPlan, error)
	FilterPlans(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	CreatePlan(ctx context.Context, trainerID primitive.ObjectID, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, trainerID, id primitive.ObjectID) error

	// History
	ListHistory(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.WorkoutHistory, error)
	FilterHistory(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.WorkoutHistory, error)
	GetHistory(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.WorkoutHistory, error)
	CreateHistory(ctx context.Context, trainerID primitive.ObjectID, record *domain.WorkoutHistory) (*domain.WorkoutHistory, error)
	UpdateHistory(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.WorkoutHistory, error)
	DeleteHistory(ctx context.Context, trainerID, id primitive.ObjectID) error
}

// trainingService implements the TrainingService interface.
type trainingService struct {
	planRepo    repository.PlanRepository
	historyRepo repository.HistoryRepository
	clientRepo  repository.ClientRepository
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(planRepo repository.PlanRepository, historyRepo repository.HistoryRepository, clientRepo repository.ClientRepository) TrainingService {
	return &trainingService{
		planRepo:    planRepo,
		historyRepo: historyRepo,
		clientRepo:  clientRepo,
	}
}

// requireClient verifies the referenced client belongs to the caller. A
// foreign client answers "not found", same as a missing one.
func (s *trainingService) requireClient(ctx context.Context, trainerID, clientID primitive.ObjectID) error {
	_, err := s.clientRepo.Get(ctx, trainerID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}

// === Plans ===

var planUpdateFields = map[string]bool{
	"name":        true,
	"description": true,
	"exercises":   true,
}

var planFilterFields = map[string]bool{
	"clientId": true,
	"name":     true,
}

func (s *trainingService) ListPlans(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.WorkoutPlan, error) {
	return s.planRepo.List(ctx, trainerID, order)
}

func (s *trainingService) FilterPlans(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.WorkoutPlan, error) {
	eq, err := sanitizeFilter(payload, planFilterFields)
	if err != nil {
		return nil, err
	}
	if err := coerceObjectID(eq, "clientId"); err != nil {
		return nil, err
	}
	return s.planRepo.Filter(ctx, trainerID, eq, order)
}

func (s *trainingService) GetPlan(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.Get(ctx, trainerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// CreatePlan stores a new plan after verifying the target client belongs to
// the caller.
func (s *trainingService) CreatePlan(ctx context.Context, trainerID primitive.ObjectID, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := s.requireClient(ctx, trainerID, plan.ClientID); err != nil {
		return nil, err
	}
	plan.TrainerID = trainerID

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *trainingService) UpdatePlan(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.WorkoutPlan, error) {
	set, unset := sanitizeUpdate(payload, planUpdateFields)

	if err := s.planRepo.Update(ctx, trainerID, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.GetPlan(ctx, trainerID, id)
}

func (s *trainingService) DeletePlan(ctx context.Context, trainerID, id primitive.ObjectID) error {
	if err := s.planRepo.Delete(ctx, trainerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// === History ===

var historyUpdateFields = map[string]bool{
	"performedAt": true,
	"results":     true,
	"rating":      true,
	"notes":       true,
}

var historyFilterFields = map[string]bool{
	"clientId": true,
	"planId":   true,
}

func (s *trainingService) ListHistory(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.WorkoutHistory, error) {
	return s.historyRepo.List(ctx, trainerID, order)
}

func (s *trainingService) FilterHistory(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.WorkoutHistory, error) {
	eq, err := sanitizeFilter(payload, historyFilterFields)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"clientId", "planId"} {
		if err := coerceObjectID(eq, key); err != nil {
			return nil, err
		}
	}
	return s.historyRepo.Filter(ctx, trainerID, eq, order)
}

func (s *trainingService) GetHistory(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.WorkoutHistory, error) {
	record, err := s.historyRepo.Get(ctx, trainerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return record, nil
}

// CreateHistory stores an execution record after verifying both the client
// and the plan belong to the caller.
func (s *trainingService) CreateHistory(ctx context.Context, trainerID primitive.ObjectID, record *domain.WorkoutHistory) (*domain.WorkoutHistory, error) {
	if record.Rating != 0 && (record.Rating < 1 || record.Rating > 10) {
		return nil, ErrInvalidRating
	}
	if err := s.requireClient(ctx, trainerID, record.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.GetPlan(ctx, trainerID, record.PlanID); err != nil {
		return nil, err
	}
	record.TrainerID = trainerID

	id, err := s.historyRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id
	return record, nil
}

func (s *trainingService) UpdateHistory(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.WorkoutHistory, error) {
	if raw, ok := payload["rating"]; ok {
		if rating, ok := raw.(float64); ok && (rating < 1 || rating > 10) {
			return nil, ErrInvalidRating
		}
	}

	set, unset := sanitizeUpdate(payload, historyUpdateFields)
	if err := coerceTime(set, "performedAt"); err != nil {
		return nil, err
	}

	if err := s.historyRepo.Update(ctx, trainerID, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return s.GetHistory(ctx, trainerID, id)
}

func (s *trainingService) DeleteHistory(ctx context.Context, trainerID, id primitive.ObjectID) error {
	if err := s.historyRepo.Delete(ctx, trainerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHistoryNotFound
		}
		return err
	}
	return nil
}
