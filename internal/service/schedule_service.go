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
	ErrClassNotFound      = apperrors.New(apperrors.KindNotFound, "class not found")
	ErrNotEnrolled        = apperrors.New(apperrors.KindNotFound, "client is not enrolled in this class")
	ErrAlreadyEnrolled    = apperrors.New(apperrors.KindConflict, "client is already enrolled in this class")
	ErrAlreadyCheckedIn   = apperrors.New(apperrors.KindConflict, "client is already checked in")
	ErrClassNotCheckable  = apperrors.New(apperrors.KindConflict, "class is not open for check-in")
	ErrInvalidClassStatus = apperrors.New(apperrors.KindValidation, "invalid class status")
)

// ScheduleService manages scheduled classes, their rosters, and the
// check-in/cancel billing workflow.
type ScheduleService interface {
	List(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.ScheduledClass, error)
	Filter(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.ScheduledClass, error)
	Get(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.ScheduledClass, error)
	Create(ctx context.Context, trainerID primitive.ObjectID, class *domain.ScheduledClass) (*domain.ScheduledClass, error)
	Update(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.ScheduledClass, error)
	Delete(ctx context.Context, trainerID, id primitive.ObjectID) error

	Enroll(ctx context.Context, trainerID, classID, clientID primitive.ObjectID) (*domain.ScheduledClass, error)
	Unenroll(ctx context.Context, trainerID, classID, clientID primitive.ObjectID) (*domain.ScheduledClass, error)

	// CheckIn records a roster check-in and books the class charge in the
	// same transaction.
	CheckIn(ctx context.Context, trainerID, classID, clientID primitive.ObjectID, location string, rate *float64) (*domain.ScheduledClass, error)

	// SetStatus transitions the class lifecycle. Canceling compensates:
	// ledger entries referencing the class are removed atomically with the
	// status change.
	SetStatus(ctx context.Context, trainerID, classID primitive.ObjectID, status domain.ClassStatus) (*domain.ScheduledClass, error)
}

// scheduleService implements the ScheduleService interface.
type scheduleService struct {
	classRepo  repository.ClassRepository
	clientRepo repository.ClientRepository
	txRepo     repository.TransactionRepository
	txRunner   repository.TxRunner
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(classRepo repository.ClassRepository, clientRepo repository.ClientRepository, txRepo repository.TransactionRepository, txRunner repository.TxRunner) ScheduleService {
	return &scheduleService{
		classRepo:  classRepo,
		clientRepo: clientRepo,
		txRepo:     txRepo,
		txRunner:   txRunner,
	}
}

var classUpdateFields = map[string]bool{
	"startsAt":    true,
	"durationMin": true,
	"modality":    true,
	"planId":      true,
	"notes":       true,
}

var classFilterFields = map[string]bool{
	"status":   true,
	"modality": true,
	"planId":   true,
}

func (s *scheduleService) List(ctx context.Context, trainerID primitive.ObjectID, order int) ([]domain.ScheduledClass, error) {
	return s.classRepo.List(ctx, trainerID, order)
}

func (s *scheduleService) Filter(ctx context.Context, trainerID primitive.ObjectID, payload map[string]any, order int) ([]domain.ScheduledClass, error) {
	eq, err := sanitizeFilter(payload, classFilterFields)
	if err != nil {
		return nil, err
	}
	if err := coerceObjectID(eq, "planId"); err != nil {
		return nil, err
	}
	return s.classRepo.Filter(ctx, trainerID, eq, order)
}

func (s *scheduleService) Get(ctx context.Context, trainerID, id primitive.ObjectID) (*domain.ScheduledClass, error) {
	class, err := s.classRepo.Get(ctx, trainerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

// Create stores a new class. Every enrolled client must belong to the
// caller; a foreign client id fails as "client not found".
func (s *scheduleService) Create(ctx context.Context, trainerID primitive.ObjectID, class *domain.ScheduledClass) (*domain.ScheduledClass, error) {
	for i := range class.Roster {
		if _, err := s.clientRepo.Get(ctx, trainerID, class.Roster[i].ClientID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrClientNotFound
			}
			return nil, err
		}
		// Check-in state is server-controlled; scrub whatever came in.
		class.Roster[i] = domain.RosterEntry{ClientID: class.Roster[i].ClientID}
	}

	class.TrainerID = trainerID
	if class.Status == "" {
		class.Status = domain.ClassStatusScheduled
	}

	id, err := s.classRepo.Create(ctx, class)
	if err != nil {
		return nil, err
	}
	class.ID = id
	return class, nil
}

func (s *scheduleService) Update(ctx context.Context, trainerID, id primitive.ObjectID, payload map[string]any) (*domain.ScheduledClass, error) {
	set, unset := sanitizeUpdate(payload, classUpdateFields)
	if err := coerceTime(set, "startsAt"); err != nil {
		return nil, err
	}
	if err := coerceObjectID(set, "planId"); err != nil {
		return nil, err
	}

	if err := s.classRepo.Update(ctx, trainerID, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return s.Get(ctx, trainerID, id)
}

func (s *scheduleService) Delete(ctx context.Context, trainerID, id primitive.ObjectID) error {
	if err := s.classRepo.Delete(ctx, trainerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	return nil
}

// Enroll adds a client to the roster.
func (s *scheduleService) Enroll(ctx context.Context, trainerID, classID, clientID primitive.ObjectID) (*domain.ScheduledClass, error) {
	class, err := s.Get(ctx, trainerID, classID)
	if err != nil {
		return nil, err
	}
	if class.RosterEntryFor(clientID) != nil {
		return nil, ErrAlreadyEnrolled
	}
	if _, err := s.clientRepo.Get(ctx, trainerID, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	roster := append(class.Roster, domain.RosterEntry{ClientID: clientID})
	if err := s.classRepo.Update(ctx, trainerID, classID, repository.Fields{"roster": roster}, nil); err != nil {
		return nil, err
	}
	return s.Get(ctx, trainerID, classID)
}

// Unenroll removes a client from the roster. A checked-in entry cannot be
// removed; cancel the class instead so billing is compensated.
func (s *scheduleService) Unenroll(ctx context.Context, trainerID, classID, clientID primitive.ObjectID) (*domain.ScheduledClass, error) {
	class, err := s.Get(ctx, trainerID, classID)
	if err != nil {
		return nil, err
	}
	entry := class.RosterEntryFor(clientID)
	if entry == nil {
		return nil, ErrNotEnrolled
	}
	if entry.CheckinDone {
		return nil, ErrAlreadyCheckedIn
	}

	roster := make([]domain.RosterEntry, 0, len(class.Roster)-1)
	for _, e := range class.Roster {
		if e.ClientID != clientID {
			roster = append(roster, e)
		}
	}
	if err := s.classRepo.Update(ctx, trainerID, classID, repository.Fields{"roster": roster}, nil); err != nil {
		return nil, err
	}
	return s.Get(ctx, trainerID, classID)
}

// CheckIn marks a roster entry as done and books the class charge. Both
// writes happen in one transaction: either the roster shows checked-in AND
// exactly one class-completed ledger entry exists, or neither does. The
// roster update itself guards against a concurrent duplicate check-in.
func (s *scheduleService) CheckIn(ctx context.Context, trainerID, classID, clientID primitive.ObjectID, location string, rate *float64) (*domain.ScheduledClass, error) {
	class, err := s.Get(ctx, trainerID, classID)
	if err != nil {
		return nil, err
	}
	if class.Status != domain.ClassStatusScheduled {
		return nil, ErrClassNotCheckable
	}

	entry := class.RosterEntryFor(clientID)
	if entry == nil {
		return nil, ErrNotEnrolled
	}
	if entry.CheckinDone {
		return nil, ErrAlreadyCheckedIn
	}

	client, err := s.clientRepo.Get(ctx, trainerID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	billed := client.DefaultRate
	if rate != nil {
		billed = *rate
	}
	if location == "" {
		location = client.DefaultLocation
	}
	now := time.Now().UTC()

	err = s.txRunner.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.classRepo.MarkCheckIn(txCtx, trainerID, classID, clientID, now, location, billed); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Entry raced to checked-in between our read and this write.
				return ErrAlreadyCheckedIn
			}
			return err
		}

		charge := &domain.Transaction{
			TrainerID:   trainerID,
			ClientID:    &clientID,
			ClassID:     &classID,
			ClientName:  client.Name,
			Amount:      billed,
			Kind:        domain.KindClassCompleted,
			Description: "class check-in",
			OccurredAt:  now,
		}
		_, err := s.txRepo.Create(txCtx, charge)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, trainerID, classID)
}

// SetStatus transitions the class lifecycle. Cancellation deletes every
// ledger entry referencing the class in the same transaction, so a canceled
// class can never leave a dangling charge.
func (s *scheduleService) SetStatus(ctx context.Context, trainerID, classID primitive.ObjectID, status domain.ClassStatus) (*domain.ScheduledClass, error) {
	switch status {
	case domain.ClassStatusScheduled, domain.ClassStatusCompleted, domain.ClassStatusCanceled, domain.ClassStatusNoShow:
	default:
		return nil, ErrInvalidClassStatus
	}

	if _, err := s.Get(ctx, trainerID, classID); err != nil {
		return nil, err
	}

	if status == domain.ClassStatusCanceled {
		err := s.txRunner.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := s.txRepo.DeleteByClassID(txCtx, trainerID, classID); err != nil {
				return err
			}
			return s.classRepo.UpdateStatus(txCtx, trainerID, classID, status)
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.classRepo.UpdateStatus(ctx, trainerID, classID, status); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
	}

	return s.Get(ctx, trainerID, classID)
}
