package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSessionFixture() (*sessionRequestService, *MockSessionRequestRepository, *MockAccountRepository) {
	reqRepo := new(MockSessionRequestRepository)
	accRepo := new(MockAccountRepository)
	svc := NewSessionRequestService(reqRepo, accRepo, 100).(*sessionRequestService)
	return svc, reqRepo, accRepo
}

var adminCaller = Caller{ID: primitive.NewObjectID(), Role: domain.RoleAdmin}

func messageIs(text string) interface{} {
	return mock.MatchedBy(func(n domain.Notification) bool {
		return n.Message == text && !n.Read && !n.ID.IsZero()
	})
}

func TestSessionRequest_Create(t *testing.T) {
	customer := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleCustomer, Name: "Alice"}
	trainer := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleTrainer, Name: "Bob"}
	ctx := context.Background()

	t.Run("success notifies the trainer once", func(t *testing.T) {
		svc, reqRepo, accRepo := newSessionFixture()
		accRepo.On("GetByID", ctx, customer.ID).Return(customer, nil)
		accRepo.On("GetByID", ctx, trainer.ID).Return(trainer, nil)
		newID := primitive.NewObjectID()
		reqRepo.On("Create", ctx, mock.AnythingOfType("*domain.SessionRequest")).Return(newID, nil)
		accRepo.On("PushNotification", ctx, trainer.ID, messageIs("New session request from Alice"), 100).Return(nil).Once()

		req, err := svc.Create(ctx, CreateSessionRequestInput{
			CustomerID:    customer.ID,
			TrainerID:     trainer.ID,
			Message:       "  leg day? ",
			PreferredDate: "2024-05-01",
			PreferredTime: "10:00",
		})

		require.NoError(t, err)
		assert.Equal(t, newID, req.ID)
		assert.Equal(t, domain.SessionPending, req.Status)
		assert.Equal(t, "leg day?", req.Message)
		accRepo.AssertNumberOfCalls(t, "PushNotification", 1)
		accRepo.AssertExpectations(t)
	})

	t.Run("missing customer persists nothing", func(t *testing.T) {
		svc, reqRepo, accRepo := newSessionFixture()
		accRepo.On("GetByID", ctx, customer.ID).Return(nil, repository.ErrNotFound)

		_, err := svc.Create(ctx, CreateSessionRequestInput{CustomerID: customer.ID, TrainerID: trainer.ID})

		assert.ErrorIs(t, err, ErrAccountNotFound)
		reqRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		accRepo.AssertNotCalled(t, "PushNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing trainer persists nothing", func(t *testing.T) {
		svc, reqRepo, accRepo := newSessionFixture()
		accRepo.On("GetByID", ctx, customer.ID).Return(customer, nil)
		accRepo.On("GetByID", ctx, trainer.ID).Return(nil, repository.ErrNotFound)

		_, err := svc.Create(ctx, CreateSessionRequestInput{CustomerID: customer.ID, TrainerID: trainer.ID})

		assert.ErrorIs(t, err, ErrAccountNotFound)
		reqRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("trainer id pointing at a customer is not found", func(t *testing.T) {
		svc, reqRepo, accRepo := newSessionFixture()
		other := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleCustomer, Name: "Carol"}
		accRepo.On("GetByID", ctx, customer.ID).Return(customer, nil)
		accRepo.On("GetByID", ctx, other.ID).Return(other, nil)

		_, err := svc.Create(ctx, CreateSessionRequestInput{CustomerID: customer.ID, TrainerID: other.ID})

		assert.ErrorIs(t, err, ErrAccountNotFound)
		reqRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("failed notification does not fail the request", func(t *testing.T) {
		svc, reqRepo, accRepo := newSessionFixture()
		accRepo.On("GetByID", ctx, customer.ID).Return(customer, nil)
		accRepo.On("GetByID", ctx, trainer.ID).Return(trainer, nil)
		reqRepo.On("Create", ctx, mock.Anything).Return(primitive.NewObjectID(), nil)
		accRepo.On("PushNotification", ctx, trainer.ID, mock.Anything, 100).Return(errors.New("connection reset"))

		req, err := svc.Create(ctx, CreateSessionRequestInput{CustomerID: customer.ID, TrainerID: trainer.ID})

		require.NoError(t, err)
		assert.NotNil(t, req)
	})
}

func TestSessionRequest_UpdateNotifiesCustomer(t *testing.T) {
	ctx := context.Background()
	trainer := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleTrainer, Name: "Bob"}
	date, clock, response := "2024-05-02", "18:30", "see you there"

	tests := []struct {
		name    string
		update  domain.SessionRequestUpdate
		message string
	}{
		{
			name:    "accepted",
			update:  domain.SessionRequestUpdate{Status: domain.SessionAccepted, TrainerResponse: &response},
			message: "Your session request has been accepted by Bob.",
		},
		{
			name:    "rejected",
			update:  domain.SessionRequestUpdate{Status: domain.SessionRejected},
			message: "Your session request has been rejected by Bob.",
		},
		{
			name:    "scheduled",
			update:  domain.SessionRequestUpdate{Status: domain.SessionScheduled, ScheduledDate: &date, ScheduledTime: &clock},
			message: "Your session with Bob has been scheduled for 2024-05-02 at 18:30.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, reqRepo, accRepo := newSessionFixture()
			existing := &domain.SessionRequest{
				ID:         primitive.NewObjectID(),
				CustomerID: primitive.NewObjectID(),
				TrainerID:  trainer.ID,
				Status:     domain.SessionPending,
			}
			reqRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
			reqRepo.On("Update", ctx, existing).Return(nil)
			accRepo.On("GetByID", ctx, trainer.ID).Return(trainer, nil)
			accRepo.On("PushNotification", ctx, existing.CustomerID, messageIs(tt.message), 100).Return(nil).Once()

			got, err := svc.Update(ctx, Caller{ID: trainer.ID, Role: domain.RoleTrainer}, existing.ID, tt.update)

			require.NoError(t, err)
			assert.Equal(t, tt.update.Status, got.Status)
			accRepo.AssertNumberOfCalls(t, "PushNotification", 1)
			accRepo.AssertExpectations(t)
		})
	}
}

func TestSessionRequest_UpdateWithoutNotification(t *testing.T) {
	ctx := context.Background()
	svc, reqRepo, accRepo := newSessionFixture()
	existing := &domain.SessionRequest{ID: primitive.NewObjectID(), Status: domain.SessionCompleted}
	reqRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	reqRepo.On("Update", ctx, existing).Return(nil)

	// Nothing guards transitions: completed may go back to pending.
	got, err := svc.Update(ctx, adminCaller, existing.ID, domain.SessionRequestUpdate{Status: domain.SessionPending})

	require.NoError(t, err)
	assert.Equal(t, domain.SessionPending, got.Status)
	accRepo.AssertNotCalled(t, "PushNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionRequest_UpdateRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown status", func(t *testing.T) {
		svc, reqRepo, _ := newSessionFixture()
		_, err := svc.Update(ctx, adminCaller, primitive.NewObjectID(), domain.SessionRequestUpdate{Status: "maybe"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		reqRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("scheduling without a time", func(t *testing.T) {
		svc, reqRepo, _ := newSessionFixture()
		date := "2024-05-02"
		existing := &domain.SessionRequest{ID: primitive.NewObjectID(), Status: domain.SessionAccepted}
		reqRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)

		_, err := svc.Update(ctx, adminCaller, existing.ID, domain.SessionRequestUpdate{Status: domain.SessionScheduled, ScheduledDate: &date})

		assert.ErrorIs(t, err, ErrInvalidInput)
		reqRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing request", func(t *testing.T) {
		svc, reqRepo, _ := newSessionFixture()
		id := primitive.NewObjectID()
		reqRepo.On("GetByID", ctx, id).Return(nil, repository.ErrNotFound)

		_, err := svc.Update(ctx, adminCaller, id, domain.SessionRequestUpdate{Status: domain.SessionAccepted})
		assert.ErrorIs(t, err, ErrSessionRequestNotFound)
	})
}

func TestSessionRequest_ListForTrainerJoinsCustomers(t *testing.T) {
	ctx := context.Background()
	svc, reqRepo, accRepo := newSessionFixture()
	trainerID := primitive.NewObjectID()
	alice := domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleCustomer, Name: "Alice", Email: "alice@example.com"}
	ghost := primitive.NewObjectID()

	reqs := []domain.SessionRequest{
		{ID: primitive.NewObjectID(), CustomerID: alice.ID, TrainerID: trainerID},
		{ID: primitive.NewObjectID(), CustomerID: ghost, TrainerID: trainerID},
	}
	reqRepo.On("ListByTrainer", ctx, trainerID).Return(reqs, nil)
	accRepo.On("GetByIDs", ctx, []primitive.ObjectID{alice.ID, ghost}).Return([]domain.Account{alice}, nil)

	views, err := svc.ListForTrainer(ctx, trainerID)

	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].Customer)
	assert.Equal(t, "Alice", views[0].Customer.Name)
	assert.Nil(t, views[0].Trainer)
	assert.Nil(t, views[1].Customer, "deleted customers join as nil")
}

func TestSessionRequest_ListForCustomerEmpty(t *testing.T) {
	ctx := context.Background()
	svc, reqRepo, accRepo := newSessionFixture()
	customerID := primitive.NewObjectID()
	reqRepo.On("ListByCustomer", ctx, customerID).Return([]domain.SessionRequest{}, nil)

	views, err := svc.ListForCustomer(ctx, customerID)

	require.NoError(t, err)
	assert.Empty(t, views)
	accRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestSessionRequest_UpdateChecksCaller(t *testing.T) {
	ctx := context.Background()
	customerID, trainerID := primitive.NewObjectID(), primitive.NewObjectID()
	customer := Caller{ID: customerID, Role: domain.RoleCustomer}
	trainer := Caller{ID: trainerID, Role: domain.RoleTrainer}
	stranger := Caller{ID: primitive.NewObjectID(), Role: domain.RoleCustomer}

	tests := []struct {
		name    string
		caller  Caller
		status  domain.SessionRequestStatus
		allowed bool
	}{
		{"stranger cannot accept", stranger, domain.SessionAccepted, false},
		{"stranger cannot cancel", stranger, domain.SessionCancelled, false},
		{"customer cannot accept", customer, domain.SessionAccepted, false},
		{"customer cannot reject", customer, domain.SessionRejected, false},
		{"customer can cancel", customer, domain.SessionCancelled, true},
		{"customer can complete", customer, domain.SessionCompleted, true},
		{"trainer can cancel", trainer, domain.SessionCancelled, true},
		{"trainer can reopen", trainer, domain.SessionPending, true},
		{"admin can cancel", adminCaller, domain.SessionCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, reqRepo, accRepo := newSessionFixture()
			existing := &domain.SessionRequest{
				ID:         primitive.NewObjectID(),
				CustomerID: customerID,
				TrainerID:  trainerID,
				Status:     domain.SessionPending,
			}
			reqRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
			reqRepo.On("Update", ctx, existing).Return(nil)

			_, err := svc.Update(ctx, tt.caller, existing.ID, domain.SessionRequestUpdate{Status: tt.status})

			if tt.allowed {
				require.NoError(t, err)
				reqRepo.AssertCalled(t, "Update", ctx, existing)
				return
			}
			assert.ErrorIs(t, err, ErrForbidden)
			assert.Equal(t, domain.SessionPending, existing.Status)
			reqRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			accRepo.AssertNotCalled(t, "PushNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSessionRequest_Delete(t *testing.T) {
	ctx := context.Background()
	customerID, trainerID := primitive.NewObjectID(), primitive.NewObjectID()

	t.Run("missing request", func(t *testing.T) {
		svc, reqRepo, _ := newSessionFixture()
		id := primitive.NewObjectID()
		reqRepo.On("GetByID", ctx, id).Return(nil, repository.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, adminCaller, id), ErrSessionRequestNotFound)
		reqRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unrelated account is forbidden", func(t *testing.T) {
		svc, reqRepo, _ := newSessionFixture()
		existing := &domain.SessionRequest{ID: primitive.NewObjectID(), CustomerID: customerID, TrainerID: trainerID}
		reqRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)

		err := svc.Delete(ctx, Caller{ID: primitive.NewObjectID(), Role: domain.RoleTrainer}, existing.ID)

		assert.ErrorIs(t, err, ErrForbidden)
		reqRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	for _, caller := range []Caller{
		{ID: customerID, Role: domain.RoleCustomer},
		{ID: trainerID, Role: domain.RoleTrainer},
		adminCaller,
	} {
		t.Run(string(caller.Role)+" may delete", func(t *testing.T) {
			svc, reqRepo, _ := newSessionFixture()
			existing := &domain.SessionRequest{ID: primitive.NewObjectID(), CustomerID: customerID, TrainerID: trainerID}
			reqRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
			reqRepo.On("Delete", ctx, existing.ID).Return(nil)

			require.NoError(t, svc.Delete(ctx, caller, existing.ID))
			reqRepo.AssertExpectations(t)
		})
	}
}
