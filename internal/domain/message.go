package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageKind type for message categories
type MessageKind string

const (
	MessageKindMessage      MessageKind = "message"
	MessageKindNotification MessageKind = "notification"
	MessageKindReminder     MessageKind = "reminder"
)

// Message is a note between two users, optionally in the context of a
// client. Visibility is sender-or-recipient rather than trainer-ownership.
type Message struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID  `bson:"senderId" json:"senderId"`
	RecipientID primitive.ObjectID  `bson:"recipientId" json:"recipientId"`
	ClientID    *primitive.ObjectID `bson:"clientId,omitempty" json:"clientId,omitempty"`
	Kind        MessageKind         `bson:"kind" json:"kind"`
	Body        string              `bson:"body" json:"body"`
	Read        bool                `bson:"read" json:"read"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
