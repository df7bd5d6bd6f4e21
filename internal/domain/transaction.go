package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionKind type for ledger entry categories
type TransactionKind string

const (
	KindClassCompleted TransactionKind = "class-completed"
	KindPayment        TransactionKind = "payment"
	KindRefund         TransactionKind = "refund"
	KindOther          TransactionKind = "other"
)

// Transaction is a signed ledger entry. By convention charges for completed
// classes are positive and payments negative; a client's outstanding balance
// is the arithmetic sum of their entries.
type Transaction struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID primitive.ObjectID  `bson:"trainerId" json:"trainerId"`
	ClientID  *primitive.ObjectID `bson:"clientId,omitempty" json:"clientId,omitempty"`
	ClassID   *primitive.ObjectID `bson:"classId,omitempty" json:"classId,omitempty"`

	// ClientName is cached from the Client record so ledger rows stay
	// readable even if the client is later deleted.
	ClientName string `bson:"clientName,omitempty" json:"clientName,omitempty"`

	Amount      float64         `bson:"amount" json:"amount"`
	Kind        TransactionKind `bson:"kind" json:"kind"`
	Method      string          `bson:"method,omitempty" json:"method,omitempty"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	OccurredAt  time.Time       `bson:"occurredAt" json:"occurredAt"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}
