package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role discriminates the three account kinds stored in the accounts collection.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleTrainer  Role = "trainer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// Profile holds free-form personal details shared by every role.
type Profile struct {
	Age             int    `bson:"age,omitempty" json:"age,omitempty"`
	Gender          string `bson:"gender,omitempty" json:"gender,omitempty"`
	Bio             string `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfileImageKey string `bson:"profileImageKey,omitempty" json:"-"` // S3 object key, never exposed directly
}

// TrainerDetails is only present on trainer accounts.
type TrainerDetails struct {
	Availability    []string `bson:"availability" json:"availability"`
	Specializations []string `bson:"specializations" json:"specializations"`
	Certifications  []string `bson:"certifications" json:"certifications"`
	ExperienceYears int      `bson:"experienceYears" json:"experienceYears"`
	HourlyRate      float64  `bson:"hourlyRate" json:"hourlyRate"`
}

// Account is a customer, trainer or admin. Role is fixed at creation and
// decides which of the role-specific sub-documents may be set:
// Subscription for customers, Trainer for trainers.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Role         Role               `bson:"role" json:"role"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Profile      Profile            `bson:"profile" json:"profile"`
	Blocked      bool               `bson:"blocked" json:"blocked"`

	Notifications []Notification `bson:"notifications" json:"-"`

	Subscription *SubscriptionAssignment `bson:"subscription,omitempty" json:"subscription,omitempty"`
	Trainer      *TrainerDetails         `bson:"trainer,omitempty" json:"trainer,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (a *Account) IsCustomer() bool { return a.Role == RoleCustomer }
func (a *Account) IsTrainer() bool  { return a.Role == RoleTrainer }
func (a *Account) IsAdmin() bool    { return a.Role == RoleAdmin }

// ProfileUpdate carries the optional fields a user may change on their own
// account. Nil means "leave as is".
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Age     *int
	Gender  *string
	Bio     *string
	Trainer *TrainerDetails // ignored for non-trainers
}

// AccountSummary is the public slice of an account joined into other
// resources, such as the counterpart on a session request.
type AccountSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Role  Role               `json:"role"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone string             `json:"phone,omitempty"`
}

func (a *Account) Summary() AccountSummary {
	return AccountSummary{ID: a.ID, Role: a.Role, Name: a.Name, Email: a.Email, Phone: a.Phone}
}
