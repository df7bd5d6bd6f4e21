package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassStatus type for class lifecycle
type ClassStatus string

const (
	ClassStatusScheduled ClassStatus = "scheduled"
	ClassStatusCompleted ClassStatus = "completed"
	ClassStatusCanceled  ClassStatus = "canceled"
	ClassStatusNoShow    ClassStatus = "no-show"
)

// ClassModality distinguishes in-person from online sessions.
type ClassModality string

const (
	ModalityInPerson ClassModality = "in-person"
	ModalityOnline   ClassModality = "online"
)

// RosterEntry is one enrolled client's state embedded in a class, including
// the check-in record that drives billing.
type RosterEntry struct {
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"`
	CheckinDone bool               `bson:"checkinDone" json:"checkinDone"`
	CheckinAt   *time.Time         `bson:"checkinAt,omitempty" json:"checkinAt,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	BilledRate  float64            `bson:"billedRate,omitempty" json:"billedRate,omitempty"` // Rate captured at check-in time
}

// ScheduledClass is a training session with an embedded roster of enrolled
// clients. Optionally linked to the workout plan being executed.
type ScheduledClass struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID primitive.ObjectID  `bson:"trainerId" json:"trainerId"`
	PlanID    *primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"`
	StartsAt  time.Time           `bson:"startsAt" json:"startsAt"`
	Duration  int                 `bson:"durationMin,omitempty" json:"durationMin,omitempty"` // Minutes
	Modality  ClassModality       `bson:"modality" json:"modality"`
	Roster    []RosterEntry       `bson:"roster,omitempty" json:"roster,omitempty"`
	Status    ClassStatus         `bson:"status" json:"status"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// RosterEntryFor returns the roster entry for the given client, or nil.
func (c *ScheduledClass) RosterEntryFor(clientID primitive.ObjectID) *RosterEntry {
	for i := range c.Roster {
		if c.Roster[i].ClientID == clientID {
			return &c.Roster[i]
		}
	}
	return nil
}
