package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is one inbox entry embedded in an account. The inbox is
// capped; older entries fall off when new ones are pushed.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewNotification builds an unread notification stamped with now.
func NewNotification(message string, now time.Time) Notification {
	return Notification{
		ID:        primitive.NewObjectID(),
		Message:   message,
		CreatedAt: now,
	}
}

// BroadcastTarget selects which accounts a broadcast reaches.
type BroadcastTarget string

const (
	TargetAll        BroadcastTarget = "all"
	TargetUsers      BroadcastTarget = "users"
	TargetTrainers   BroadcastTarget = "trainers"
	TargetIndividual BroadcastTarget = "individual"
)

func (t BroadcastTarget) Valid() bool {
	switch t {
	case TargetAll, TargetUsers, TargetTrainers, TargetIndividual:
		return true
	}
	return false
}

// Roles returns the account roles a non-individual target covers.
func (t BroadcastTarget) Roles() []Role {
	switch t {
	case TargetUsers:
		return []Role{RoleCustomer}
	case TargetTrainers:
		return []Role{RoleTrainer}
	case TargetAll:
		return []Role{RoleCustomer, RoleTrainer}
	}
	return nil
}

// NotificationHistory is the audit record of one broadcast.
type NotificationHistory struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Message        string              `bson:"message" json:"message"`
	Target         BroadcastTarget     `bson:"target" json:"target"`
	RecipientCount int64               `bson:"recipientCount" json:"recipientCount"`
	RecipientID    *primitive.ObjectID `bson:"recipientId,omitempty" json:"recipientId,omitempty"`
	RecipientName  string              `bson:"recipientName,omitempty" json:"recipientName,omitempty"`
	SentBy         primitive.ObjectID  `bson:"sentBy" json:"sentBy"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}
