package repository

import (
	"context"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Fields carries equality filters and partial-update documents between
// services and repositories without leaking driver types upward.
type Fields map[string]any

// Sort direction for list/filter operations. Newest-first is the default
// everywhere.
const (
	OrderAsc  = 1
	OrderDesc = -1
)

// TxRunner runs a function inside a single atomic transaction. Repository
// calls made with the callback's context join the transaction.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// OwnedRepository is the CRUD contract shared by every trainer-scoped
// entity. Ownership is baked into every operation: records outside the
// owner's scope behave exactly like records that do not exist.
type OwnedRepository[T any] interface {
	List(ctx context.Context, ownerID primitive.ObjectID, order int) ([]T, error)
	Filter(ctx context.Context, ownerID primitive.ObjectID, eq Fields, order int) ([]T, error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*T, error)
	Create(ctx context.Context, doc *T) (primitive.ObjectID, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, set Fields, unset []string) error
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// UserRepository defines the interface for interacting with user data.
// Users are not tenant-scoped; admin handlers gate access instead.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, set Fields) error
	SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Count(ctx context.Context) (int64, error)
}

// SessionRepository stores live login sessions keyed by token id.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

// ClientRepository manages a trainer's clients, the root of the tenant
// scope.
type ClientRepository interface {
	OwnedRepository[domain.Client]
}

// PlanRepository manages workout plans.
type PlanRepository interface {
	OwnedRepository[domain.WorkoutPlan]
	DeleteByClientID(ctx context.Context, ownerID, clientID primitive.ObjectID) error
}

// ClassRepository manages scheduled classes, including the roster check-in
// mutation used by the billing workflow.
type ClassRepository interface {
	OwnedRepository[domain.ScheduledClass]

	// MarkCheckIn records a check-in on one roster entry. The update only
	// matches an entry that is not yet checked in, so a concurrent
	// duplicate check-in returns ErrNotFound instead of double-billing.
	MarkCheckIn(ctx context.Context, ownerID, classID, clientID primitive.ObjectID, at time.Time, location string, rate float64) error

	UpdateStatus(ctx context.Context, ownerID, classID primitive.ObjectID, status domain.ClassStatus) error
}

// AssessmentRepository manages physical assessments.
type AssessmentRepository interface {
	OwnedRepository[domain.Assessment]
}

// TransactionRepository manages the financial ledger.
type TransactionRepository interface {
	OwnedRepository[domain.Transaction]
	DeleteByClassID(ctx context.Context, ownerID, classID primitive.ObjectID) error
	BalanceForClient(ctx context.Context, ownerID, clientID primitive.ObjectID) (float64, error)
}

// HistoryRepository manages workout execution records.
type HistoryRepository interface {
	OwnedRepository[domain.WorkoutHistory]
}

// ProgressRepository manages progress entries.
type ProgressRepository interface {
	OwnedRepository[domain.ProgressEntry]
}

// ExerciseRepository manages the shared exercise library. Not tenant-scoped.
type ExerciseRepository interface {
	List(ctx context.Context, order int) ([]domain.Exercise, error)
	Filter(ctx context.Context, eq Fields, order int) ([]domain.Exercise, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, set Fields, unset []string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MessageRepository manages messages. Scope is sender-or-recipient rather
// than trainer ownership.
type MessageRepository interface {
	List(ctx context.Context, userID primitive.ObjectID, order int) ([]domain.Message, error)
	Filter(ctx context.Context, userID primitive.ObjectID, eq Fields, order int) ([]domain.Message, error)
	Get(ctx context.Context, userID, id primitive.ObjectID) (*domain.Message, error)
	Create(ctx context.Context, message *domain.Message) (primitive.ObjectID, error)
	Update(ctx context.Context, userID, id primitive.ObjectID, set Fields, unset []string) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}
