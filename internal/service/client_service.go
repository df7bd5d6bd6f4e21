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
	// Non-owned records answer exactly like nonexistent ones, so ownership
	// can never be probed.
	ErrClientNotFound = apperrors.New(apperrors.KindNotFound, "client not found")
)

// ClientService manages a trainer's clients.
type ClientService interface {
	List(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.Client, error)
	Filter(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.Client, error)
	Get(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.Client, error)
	Create(ctx context.Context, trainerID primitive.ObjectID, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.Client, error)
	Delete(ctx context.Context, trainerID, id primitive.ObjectID) error
	Balance(ctx context.Context, trainerID, clientID primitive.ObjectID) (float64, error)
}

// clientService implements the ClientService interface.
type clientService struct {
	clientRepo repository.ClientRepository
	planRepo   repository.PlanRepository
	txRepo     repository.TransactionRepository
}

// NewClientService creates a new instance of clientService.
func NewClientService(clientRepo repository.ClientRepository, planRepo repository.PlanRepository, txRepo repository.TransactionRepository) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		planRepo:   planRepo,
		txRepo:     txRepo,
	}
}

// clientUpdateFields is what a caller may change. The ownership field is
// deliberately absent and silently stripped if supplied.
var clientUpdateFields = map[string]bool{
	"name":            true,
	"email":           true,
	"phone":           true,
	"heightCm":        true,
	"weightKg":        true,
	"sex":             true,
	"birthDate":       true,
	"goal":            true,
	"status":          true,
	"defaultRate":     true,
	"defaultLocation": true,
}

var clientFilterFields = map[string]bool{
	"status": true,
	"sex":    true,
	"goal":   true,
}

func (s *clientService) List(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.Client, error) {
	return s.clientRepo.List(ctx, trainerID, order)
}

func (s *clientService) Filter(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.Client, error) {
	eq, err := sanitizeFilter(payload, clientFilterFields)
	if err != nil {
		return nil, err
	}
	return s.clientRepo.Filter(ctx, trainerID, eq, order)
}

func (s *clientService) Get(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.Client, error) {
	client, err := s.clientRepo.Get(ctx, trainerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// Create stores a new client. Ownership is stamped with the caller's
// identity regardless of anything in the request body.
func (s *clientService) Create(ctx context.Context, trainerID primitive.ObjectID, client *domain.Client) (*domain.Client, error) {
	client.TrainerID = trainerID
	if client.Status == "" {
		client.Status = domain.ClientStatusActive
	}

	id, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	client.ID = id
	return client, nil
}

func (s *clientService) Update(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.Client, error) {
	set, unset := sanitizeUpdate(payload, clientUpdateFields)
	if err := coerceTime(set, "birthDate"); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Update(ctx, trainerID, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return s.Get(ctx, trainerID, id)
}

// Delete removes a client and their workout plans. Ledger entries are kept;
// they carry the cached client name for that reason.
func (s *clientService) Delete(ctx context.Context, trainerID, id primitive.ObjectID) error {
	if err := s.clientRepo.Delete(ctx, trainerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return s.planRepo.DeleteByClientID(ctx, trainerID, id)
}

// Balance sums the client's signed ledger entries.
func (s *clientService) Balance(ctx context.Context, trainerID, clientID primitive.ObjectID) (float64, error) {
	if _, err := s.Get(ctx, trainerID, clientID); err != nil {
		return 0, err
	}
	return s.txRepo.BalanceForClient(ctx, trainerID, clientID)
}
