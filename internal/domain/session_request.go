package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionRequestStatus is the lifecycle state of a booking negotiation.
// Transitions are not guarded; any valid value may follow any other.
type SessionRequestStatus string

const (
	SessionPending   SessionRequestStatus = "pending"
	SessionAccepted  SessionRequestStatus = "accepted"
	SessionRejected  SessionRequestStatus = "rejected"
	SessionScheduled SessionRequestStatus = "scheduled"
	SessionCompleted SessionRequestStatus = "completed"
	SessionCancelled SessionRequestStatus = "cancelled"
)

func (s SessionRequestStatus) Valid() bool {
	switch s {
	case SessionPending, SessionAccepted, SessionRejected,
		SessionScheduled, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// SessionRequest is one customer's booking request to one trainer.
// Preferred date and time are advisory strings supplied by the customer.
type SessionRequest struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CustomerID      primitive.ObjectID   `bson:"customerId" json:"customerId"`
	TrainerID       primitive.ObjectID   `bson:"trainerId" json:"trainerId"`
	Message         string               `bson:"message" json:"message"`
	PreferredDate   string               `bson:"preferredDate,omitempty" json:"preferredDate,omitempty"`
	PreferredTime   string               `bson:"preferredTime,omitempty" json:"preferredTime,omitempty"`
	Status          SessionRequestStatus `bson:"status" json:"status"`
	TrainerResponse string               `bson:"trainerResponse,omitempty" json:"trainerResponse,omitempty"`
	ScheduledDate   string               `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	ScheduledTime   string               `bson:"scheduledTime,omitempty" json:"scheduledTime,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// SessionRequestUpdate holds the fields a trainer may overwrite.
// Nil pointers are left untouched.
type SessionRequestUpdate struct {
	Status          SessionRequestStatus
	TrainerResponse *string
	ScheduledDate   *string
	ScheduledTime   *string
}
