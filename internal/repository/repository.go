package repository

import (
	"alcyxob/fitness-center/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
	// ErrConflict means the document exists but did not match a conditional update.
	ErrConflict = RepositoryError("conditional update did not match")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Transactor runs fn so that every repository call made with the ctx it
// receives commits or aborts together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AccountRepository stores customers, trainers and admins in one collection.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	ListTrainers(ctx context.Context, specialization string) ([]domain.Account, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error
	SetProfileImageKey(ctx context.Context, id primitive.ObjectID, key string) error
	SetBlocked(ctx context.Context, id primitive.ObjectID, blocked bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// SetSubscription overwrites the customer's embedded subscription.
	SetSubscription(ctx context.Context, customerID primitive.ObjectID, sub *domain.SubscriptionAssignment) error
	// TransitionSubscription moves subscription.status from -> to only if it
	// currently equals from. It reports whether a change was made.
	TransitionSubscription(ctx context.Context, customerID primitive.ObjectID, from, to domain.SubscriptionStatus) (bool, error)

	// PushNotification appends n and keeps only the newest limit entries.
	PushNotification(ctx context.Context, id primitive.ObjectID, n domain.Notification, limit int) error
	// PushNotificationToRoles does the same for every account with one of roles
	// and returns how many accounts matched.
	PushNotificationToRoles(ctx context.Context, roles []domain.Role, n domain.Notification, limit int) (int64, error)
	MarkNotificationRead(ctx context.Context, id, notificationID primitive.ObjectID) error
	MarkAllNotificationsRead(ctx context.Context, id primitive.ObjectID) error
}

// PlanRepository defines the interface for the subscription plan catalog.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.SubscriptionPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SubscriptionPlan, error)
	List(ctx context.Context) ([]domain.SubscriptionPlan, error)
	Update(ctx context.Context, plan *domain.SubscriptionPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PaymentRepository defines the interface for the payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	// TransitionStatus flips status from -> to and stamps the verifier.
	// Returns ErrConflict when the payment exists but is no longer in from.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to domain.PaymentStatus, verifiedBy primitive.ObjectID) error
	SetProofKey(ctx context.Context, id primitive.ObjectID, key string) error
}

// SessionRequestRepository defines the interface for session requests.
type SessionRequestRepository interface {
	Create(ctx context.Context, req *domain.SessionRequest) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SessionRequest, error)
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.SessionRequest, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.SessionRequest, error)
	Update(ctx context.Context, req *domain.SessionRequest) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NotificationHistoryRepository stores the broadcast audit log.
type NotificationHistoryRepository interface {
	Create(ctx context.Context, h *domain.NotificationHistory) (primitive.ObjectID, error)
	ListRecent(ctx context.Context, limit int) ([]domain.NotificationHistory, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// FeedbackRepository defines the interface for customer feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Feedback, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
