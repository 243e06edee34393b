package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a customer's rating of the center or of a specific trainer.
type Feedback struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CustomerID primitive.ObjectID  `bson:"customerId" json:"customerId"`
	TrainerID  *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	Rating     int                 `bson:"rating" json:"rating"`
	Message    string              `bson:"message" json:"message"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
