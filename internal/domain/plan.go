package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanDuration is the billing period of a subscription plan.
type PlanDuration string

const (
	DurationMonthly   PlanDuration = "monthly"
	DurationQuarterly PlanDuration = "quarterly"
	DurationYearly    PlanDuration = "yearly"
)

func (d PlanDuration) Valid() bool {
	switch d {
	case DurationMonthly, DurationQuarterly, DurationYearly:
		return true
	}
	return false
}

// Months returns the number of calendar months the duration covers.
// Unknown values count as one month.
func (d PlanDuration) Months() int {
	switch d {
	case DurationQuarterly:
		return 3
	case DurationYearly:
		return 12
	default:
		return 1
	}
}

// SubscriptionPlan is a catalog entry managed by admins.
type SubscriptionPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Duration  PlanDuration       `bson:"duration" json:"duration"`
	Price     float64            `bson:"price" json:"price"`
	Discount  float64            `bson:"discount" json:"discount"` // percent, 0..100
	Features  []string           `bson:"features" json:"features"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FinalPrice applies the discount. No rounding is applied.
func (p *SubscriptionPlan) FinalPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// EndDate is start shifted by the plan's duration using calendar months.
func (p *SubscriptionPlan) EndDate(start time.Time) time.Time {
	return start.AddDate(0, p.Duration.Months(), 0)
}
