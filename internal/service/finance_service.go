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
	ErrTransactionNotFound = apperrors.New(apperrors.KindNotFound, "transaction not found")
	ErrInvalidTxKind       = apperrors.New(apperrors.KindValidation, "invalid transaction kind")
)

// FinanceService manages the financial ledger. Class charges are created by
// the check-in workflow; this service covers manual entries (payments,
// refunds, ad-hoc charges) and ledger queries.
type FinanceService interface {
	List(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.Transaction, error)
	Filter(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.Transaction, error)
	Get(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.Transaction, error)
	Create(ctx context.Context, trainerID primitive.ObjectID, tx *domain.Transaction) (*domain.Transaction, error)
	Update(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.Transaction, error)
	Delete(ctx context.Context, trainerID, id primitive.ObjectID) error
}

type financeService struct {
	txRepo     repository.TransactionRepository
	clientRepo repository.ClientRepository
}

// NewFinanceService creates a new instance of financeService.
func NewFinanceService(txRepo repository.TransactionRepository, clientRepo repository.ClientRepository) FinanceService {
	return &financeService{txRepo: txRepo, clientRepo: clientRepo}
}

var txUpdateFields = map[string]bool{
	"amount":      true,
	"kind":        true,
	"method":      true,
	"description": true,
	"occurredAt":  true,
	"clientName":  true,
}

var txFilterFields = map[string]bool{
	"kind":     true,
	"method":   true,
	"clientId": true,
	"classId":  true,
}

func validTxKind(kind domain.TransactionKind) bool {
	switch kind {
	case domain.KindClassCompleted, domain.KindPayment, domain.KindRefund, domain.KindOther:
		return true
	}
	return false
}

func (s *financeService) List(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.Transaction, error) {
	return s.txRepo.List(ctx, trainerID, order)
}

func (s *financeService) Filter(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.Transaction, error) {
	eq, err := sanitizeFilter(payload, txFilterFields)
	if err != nil {
		return nil, err
	}
	if err := coerceObjectID(eq, "clientId"); err != nil {
		return nil, err
	}
	if err := coerceObjectID(eq, "classId"); err != nil {
		return nil, err
	}
	return s.txRepo.Filter(ctx, trainerID, eq, order)
}

func (s *financeService) Get(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.Transaction, error) {
	tx, err := s.txRepo.Get(ctx, trainerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// Create stores a manual ledger entry. When a client reference is present it
// is verified against the caller's roster and the cached client name is
// backfilled if the payload left it empty.
func (s *financeService) Create(ctx context.Context, trainerID primitive.ObjectID, tx *domain.Transaction) (*domain.Transaction, error) {
	if !validTxKind(tx.Kind) {
		return nil, ErrInvalidTxKind
	}

	if tx.ClientID != nil {
		client, err := s.clientRepo.Get(ctx, trainerID, *tx.ClientID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrClientNotFound
			}
			return nil, err
		}
		if tx.ClientName == "" {
			tx.ClientName = client.Name
		}
	}

	tx.TrainerID = trainerID
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = time.Now().UTC()
	}

	id, err := s.txRepo.Create(ctx, tx)
	if err != nil {
		return nil, err
	}
	tx.ID = id
	return tx, nil
}

func (s *financeService) Update(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.Transaction, error) {
	set, unset := sanitizeUpdate(payload, txUpdateFields)
	if err := coerceTime(set, "occurredAt"); err != nil {
		return nil, err
	}
	if kind, ok := set["kind"]; ok {
		k, _ := kind.(string)
		if !validTxKind(domain.TransactionKind(k)) {
			return nil, ErrInvalidTxKind
		}
	}

	if err := s.txRepo.Update(ctx, trainerID, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return s.Get(ctx, trainerID, id)
}

func (s *financeService) Delete(ctx context.Context, trainerID, id primitive.ObjectID) error {
	if err := s.txRepo.Delete(ctx, trainerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}
