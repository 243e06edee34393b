package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionStatus tracks the customer's embedded subscription.
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// SubscriptionAssignment is embedded in a customer account. It references
// the plan and the payment that pays for it.
type SubscriptionAssignment struct {
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
	Status    SubscriptionStatus `bson:"status" json:"status"`
	PaymentID primitive.ObjectID `bson:"paymentId" json:"paymentId"`
	Amount    float64            `bson:"amount" json:"amount"`
}
