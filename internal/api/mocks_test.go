package api

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

// --- MockAuthService ---
type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*domain.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Account), args.Error(2)
}

func (m *MockAuthService) GetJWTSecret() string { return testSecret }

// --- MockSubscriptionService ---
type MockSubscriptionService struct{ mock.Mock }

func (m *MockSubscriptionService) payment(args mock.Arguments) (*domain.Payment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockSubscriptionService) Purchase(ctx context.Context, customerID primitive.ObjectID, in service.PurchaseInput) (*service.PurchaseResult, error) {
	args := m.Called(ctx, customerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PurchaseResult), args.Error(1)
}

func (m *MockSubscriptionService) VerifyPayment(ctx context.Context, adminID, paymentID primitive.ObjectID, action string) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, adminID, paymentID, action))
}

func (m *MockSubscriptionService) ApprovePayment(ctx context.Context, adminID, paymentID primitive.ObjectID) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, adminID, paymentID))
}

func (m *MockSubscriptionService) RejectPayment(ctx context.Context, adminID, paymentID primitive.ObjectID) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, adminID, paymentID))
}

func (m *MockSubscriptionService) RecordManualPayment(ctx context.Context, adminID primitive.ObjectID, in service.ManualPaymentInput) (*domain.Payment, error) {
	return m.payment(m.Called(ctx, adminID, in))
}

func (m *MockSubscriptionService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockSubscriptionService) MyPayments(ctx context.Context, customerID primitive.ObjectID) ([]domain.Payment, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockSubscriptionService) MySubscription(ctx context.Context, customerID primitive.ObjectID) (*service.SubscriptionView, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubscriptionView), args.Error(1)
}

func (m *MockSubscriptionService) RequestPaymentProofUploadURL(ctx context.Context, customerID, paymentID primitive.ObjectID, contentType string) (*service.UploadURL, error) {
	args := m.Called(ctx, customerID, paymentID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadURL), args.Error(1)
}

func (m *MockSubscriptionService) ConfirmPaymentProof(ctx context.Context, customerID, paymentID primitive.ObjectID, objectKey string) (*domain.Payment, error) {
	args := m.Called(ctx, customerID, paymentID, objectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockSubscriptionService) GetPaymentProofURL(ctx context.Context, requesterID primitive.ObjectID, requesterRole domain.Role, paymentID primitive.ObjectID) (string, error) {
	args := m.Called(ctx, requesterID, requesterRole, paymentID)
	return args.String(0), args.Error(1)
}

// --- MockSessionRequestService ---
type MockSessionRequestService struct{ mock.Mock }

func (m *MockSessionRequestService) Create(ctx context.Context, in service.CreateSessionRequestInput) (*domain.SessionRequest, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRequest), args.Error(1)
}

func (m *MockSessionRequestService) ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]service.SessionRequestView, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SessionRequestView), args.Error(1)
}

func (m *MockSessionRequestService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]service.SessionRequestView, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SessionRequestView), args.Error(1)
}

func (m *MockSessionRequestService) Update(ctx context.Context, caller service.Caller, requestID primitive.ObjectID, update domain.SessionRequestUpdate) (*domain.SessionRequest, error) {
	args := m.Called(ctx, caller, requestID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRequest), args.Error(1)
}

func (m *MockSessionRequestService) Delete(ctx context.Context, caller service.Caller, requestID primitive.ObjectID) error {
	return m.Called(ctx, caller, requestID).Error(0)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) Push(ctx context.Context, recipientID primitive.ObjectID, message string) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, accountID primitive.ObjectID) ([]domain.Notification, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, accountID, notificationID primitive.ObjectID) error {
	return m.Called(ctx, accountID, notificationID).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, accountID primitive.ObjectID) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *MockNotificationService) Broadcast(ctx context.Context, adminID primitive.ObjectID, in service.BroadcastInput) (*domain.NotificationHistory, error) {
	args := m.Called(ctx, adminID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationHistory), args.Error(1)
}

func (m *MockNotificationService) RecordHistory(ctx context.Context, adminID primitive.ObjectID, in service.RecordHistoryInput) (*domain.NotificationHistory, error) {
	args := m.Called(ctx, adminID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationHistory), args.Error(1)
}

func (m *MockNotificationService) History(ctx context.Context) ([]domain.NotificationHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationHistory), args.Error(1)
}

func (m *MockNotificationService) DeleteHistory(ctx context.Context, historyID primitive.ObjectID) error {
	return m.Called(ctx, historyID).Error(0)
}

// --- helpers ---

func newTestRouter(svc Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, svc, RouteOptions{JWTSecret: testSecret, AuthRateLimit: 1000, AuthBurst: 1000})
	return router
}

func signToken(t *testing.T, id primitive.ObjectID, role domain.Role, ttl time.Duration) string {
	t.Helper()
	claims := jwtClaims{
		UserID: id.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitness-center",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
