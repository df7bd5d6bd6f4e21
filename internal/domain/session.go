package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is one live login. Tokens reference a session by id, so revoking
// the session invalidates the token without touching the user record, and a
// user may hold several concurrent sessions across devices.
type Session struct {
	ID        string             `bson:"_id" json:"id"` // UUID minted at login
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
