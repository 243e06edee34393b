package service

import (
	"alcyxob/fitness-center/internal/domain"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockAccountRepository is a mock implementation of repository.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Account, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListTrainers(ctx context.Context, specialization string) ([]domain.Account, error) {
	args := m.Called(ctx, specialization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockAccountRepository) SetProfileImageKey(ctx context.Context, id primitive.ObjectID, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

func (m *MockAccountRepository) SetBlocked(ctx context.Context, id primitive.ObjectID, blocked bool) error {
	return m.Called(ctx, id, blocked).Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepository) SetSubscription(ctx context.Context, customerID primitive.ObjectID, sub *domain.SubscriptionAssignment) error {
	return m.Called(ctx, customerID, sub).Error(0)
}

func (m *MockAccountRepository) TransitionSubscription(ctx context.Context, customerID primitive.ObjectID, from, to domain.SubscriptionStatus) (bool, error) {
	args := m.Called(ctx, customerID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) PushNotification(ctx context.Context, id primitive.ObjectID, n domain.Notification, limit int) error {
	return m.Called(ctx, id, n, limit).Error(0)
}

func (m *MockAccountRepository) PushNotificationToRoles(ctx context.Context, roles []domain.Role, n domain.Notification, limit int) (int64, error) {
	args := m.Called(ctx, roles, n, limit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) MarkNotificationRead(ctx context.Context, id, notificationID primitive.ObjectID) error {
	return m.Called(ctx, id, notificationID).Error(0)
}

func (m *MockAccountRepository) MarkAllNotificationsRead(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPlanRepository is a mock implementation of repository.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *domain.SubscriptionPlan) (primitive.ObjectID, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubscriptionPlan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *domain.SubscriptionPlan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPaymentRepository is a mock implementation of repository.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	args := m.Called(ctx, payment)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to domain.PaymentStatus, verifiedBy primitive.ObjectID) error {
	return m.Called(ctx, id, from, to, verifiedBy).Error(0)
}

func (m *MockPaymentRepository) SetProofKey(ctx context.Context, id primitive.ObjectID, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

// MockSessionRequestRepository is a mock implementation of repository.SessionRequestRepository
type MockSessionRequestRepository struct {
	mock.Mock
}

func (m *MockSessionRequestRepository) Create(ctx context.Context, req *domain.SessionRequest) (primitive.ObjectID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockSessionRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SessionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRequest), args.Error(1)
}

func (m *MockSessionRequestRepository) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.SessionRequest, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionRequest), args.Error(1)
}

func (m *MockSessionRequestRepository) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.SessionRequest, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionRequest), args.Error(1)
}

func (m *MockSessionRequestRepository) Update(ctx context.Context, req *domain.SessionRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockSessionRequestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

// MockHistoryRepository is a mock implementation of repository.NotificationHistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, h *domain.NotificationHistory) (primitive.ObjectID, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.NotificationHistory, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationHistory), args.Error(1)
}

func (m *MockHistoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

// MockFeedbackRepository is a mock implementation of repository.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (primitive.ObjectID, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockFeedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

// MockFileStorage is a mock implementation of storage.FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}

// fakeTransactor runs fn inline and counts calls, so tests can tell whether
// writes went through a transaction.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}
