package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus moves exactly once, from pending to success or failed.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentSuccess, PaymentFailed:
		return true
	}
	return false
}

// PaymentType tells how the payment entered the ledger.
type PaymentType string

const (
	PaymentTypeSubscription PaymentType = "subscription"
	PaymentTypeManual       PaymentType = "manual"
)

// Payment is one recorded payment attempt. TransactionID is whatever the
// customer typed in; it is never checked against a gateway.
type Payment struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID  `bson:"userId" json:"userId"`
	PlanID        *primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"`
	Amount        float64             `bson:"amount" json:"amount"`
	PaymentMethod string              `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID string              `bson:"transactionId" json:"transactionId"`
	Status        PaymentStatus       `bson:"status" json:"status"`
	Type          PaymentType         `bson:"type" json:"type"`
	ProofKey      string              `bson:"proofKey,omitempty" json:"-"`
	VerifiedBy    *primitive.ObjectID `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time          `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PaymentFilter narrows payment listings. Zero values match everything.
type PaymentFilter struct {
	UserID *primitive.ObjectID
	Status PaymentStatus
}
