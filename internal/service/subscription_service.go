package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/logger"
	"alcyxob/fitness-center/internal/metrics"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"

	paymentProofPrefix = "payment-proofs"
)

var allowedProofTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// PurchaseInput is a customer's declaration that they paid for a plan.
type PurchaseInput struct {
	PlanID        primitive.ObjectID
	PaymentMethod string
	TransactionID string
}

// PurchaseResult is what a purchase leaves behind: the pending payment and
// the pending subscription now on the customer's account.
type PurchaseResult struct {
	Subscription *domain.SubscriptionAssignment
	Payment      *domain.Payment
}

// ManualPaymentInput is a payment an admin records at the front desk.
type ManualPaymentInput struct {
	UserID        primitive.ObjectID
	Amount        float64
	PaymentMethod string
	TransactionID string
	Status        domain.PaymentStatus
}

// SubscriptionView joins a customer's subscription with its plan. Plan is nil
// when the plan has since been deleted from the catalog.
type SubscriptionView struct {
	Subscription *domain.SubscriptionAssignment
	Plan         *domain.SubscriptionPlan
}

type SubscriptionService interface {
	Purchase(ctx context.Context, customerID primitive.ObjectID, in PurchaseInput) (*PurchaseResult, error)
	// VerifyPayment is the one path that settles a payment. action is approve or reject.
	VerifyPayment(ctx context.Context, adminID, paymentID primitive.ObjectID, action string) (*domain.Payment, error)
	ApprovePayment(ctx context.Context, adminID, paymentID primitive.ObjectID) (*domain.Payment, error)
	RejectPayment(ctx context.Context, adminID, paymentID primitive.ObjectID) (*domain.Payment, error)
	RecordManualPayment(ctx context.Context, adminID primitive.ObjectID, in ManualPaymentInput) (*domain.Payment, error)

	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	MyPayments(ctx context.Context, customerID primitive.ObjectID) ([]domain.Payment, error)
	MySubscription(ctx context.Context, customerID primitive.ObjectID) (*SubscriptionView, error)

	RequestPaymentProofUploadURL(ctx context.Context, customerID, paymentID primitive.ObjectID, contentType string) (*UploadURL, error)
	ConfirmPaymentProof(ctx context.Context, customerID, paymentID primitive.ObjectID, objectKey string) (*domain.Payment, error)
	GetPaymentProofURL(ctx context.Context, requesterID primitive.ObjectID, requesterRole domain.Role, paymentID primitive.ObjectID) (string, error)
}

type subscriptionService struct {
	planRepo    repository.PlanRepository
	paymentRepo repository.PaymentRepository
	accountRepo repository.AccountRepository
	tx          repository.Transactor
	fileStorage storage.FileStorage
	now         func() time.Time
}

func NewSubscriptionService(
	planRepo repository.PlanRepository,
	paymentRepo repository.PaymentRepository,
	accountRepo repository.AccountRepository,
	tx repository.Transactor,
	fileStorage storage.FileStorage,
) SubscriptionService {
	return &subscriptionService{
		planRepo:    planRepo,
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		tx:          tx,
		fileStorage: fileStorage,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *subscriptionService) getCustomer(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if !account.IsCustomer() {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (s *subscriptionService) getPayment(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// Purchase records a pending payment and replaces the customer's subscription
// with a pending one for the plan, both in one transaction. A subscription
// that was already active is replaced too; the latest purchase always wins.
func (s *subscriptionService) Purchase(ctx context.Context, customerID primitive.ObjectID, in PurchaseInput) (*PurchaseResult, error) {
	method := strings.TrimSpace(in.PaymentMethod)
	txnID := strings.TrimSpace(in.TransactionID)
	if in.PlanID.IsZero() || method == "" || txnID == "" {
		return nil, fmt.Errorf("%w: subscriptionId, paymentMethod and transactionId are required", ErrInvalidInput)
	}

	plan, err := s.planRepo.GetByID(ctx, in.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if _, err := s.getCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	start := s.now()
	planID := plan.ID
	payment := &domain.Payment{
		UserID:        customerID,
		PlanID:        &planID,
		Amount:        plan.FinalPrice(),
		PaymentMethod: method,
		TransactionID: txnID,
		Status:        domain.PaymentPending,
		Type:          domain.PaymentTypeSubscription,
	}
	sub := &domain.SubscriptionAssignment{
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   plan.EndDate(start),
		Status:    domain.SubscriptionPending,
		Amount:    payment.Amount,
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		paymentID, err := s.paymentRepo.Create(txCtx, payment)
		if err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		payment.ID = paymentID
		sub.PaymentID = paymentID
		if err := s.accountRepo.SetSubscription(txCtx, customerID, sub); err != nil {
			return fmt.Errorf("assign subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	metrics.RecordPurchase(string(plan.Duration))
	return &PurchaseResult{Subscription: sub, Payment: payment}, nil
}

// VerifyPayment settles a pending payment. approve marks it success and
// activates the owner's subscription; reject marks it failed and cancels
// the subscription. The subscription only moves if it is still pending.
func (s *subscriptionService) VerifyPayment(ctx context.Context, adminID, paymentID primitive.ObjectID, action string) (*domain.Payment, error) {
	var paymentTo domain.PaymentStatus
	var subTo domain.SubscriptionStatus
	switch action {
	case ActionApprove:
		paymentTo, subTo = domain.PaymentSuccess, domain.SubscriptionActive
	case ActionReject:
		paymentTo, subTo = domain.PaymentFailed, domain.SubscriptionCancelled
	default:
		return nil, ErrInvalidAction
	}

	payment, err := s.getPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.GetByID(ctx, payment.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if payment.Status != domain.PaymentPending {
		return nil, ErrPaymentNotPending
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.TransitionStatus(txCtx, paymentID, domain.PaymentPending, paymentTo, adminID); err != nil {
			return err
		}
		changed, err := s.accountRepo.TransitionSubscription(txCtx, payment.UserID, domain.SubscriptionPending, subTo)
		if err != nil {
			return err
		}
		if !changed {
			logger.Debugf("Payment %s settled without a pending subscription on account %s", paymentID.Hex(), payment.UserID.Hex())
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrPaymentNotPending
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	metrics.RecordPaymentVerification(action)

	verifiedAt := s.now()
	payment.Status = paymentTo
	payment.VerifiedBy = &adminID
	payment.VerifiedAt = &verifiedAt
	return payment, nil
}

func (s *subscriptionService) ApprovePayment(ctx context.Context, adminID, paymentID primitive.ObjectID) (*domain.Payment, error) {
	return s.VerifyPayment(ctx, adminID, paymentID, ActionApprove)
}

func (s *subscriptionService) RejectPayment(ctx context.Context, adminID, paymentID primitive.ObjectID) (*domain.Payment, error) {
	return s.VerifyPayment(ctx, adminID, paymentID, ActionReject)
}

// RecordManualPayment enters a payment taken outside the app. It does not
// touch the customer's subscription. Status defaults to success.
func (s *subscriptionService) RecordManualPayment(ctx context.Context, adminID primitive.ObjectID, in ManualPaymentInput) (*domain.Payment, error) {
	if in.UserID.IsZero() || strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: userId and paymentMethod are required", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = domain.PaymentSuccess
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, in.Status)
	}
	if _, err := s.getCustomer(ctx, in.UserID); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		UserID:        in.UserID,
		Amount:        in.Amount,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		TransactionID: strings.TrimSpace(in.TransactionID),
		Status:        in.Status,
		Type:          domain.PaymentTypeManual,
	}
	if in.Status != domain.PaymentPending {
		now := s.now()
		payment.VerifiedBy = &adminID
		payment.VerifiedAt = &now
	}

	id, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = id
	return payment, nil
}

func (s *subscriptionService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, filter.Status)
	}
	return s.paymentRepo.List(ctx, filter)
}

func (s *subscriptionService) MyPayments(ctx context.Context, customerID primitive.ObjectID) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx, domain.PaymentFilter{UserID: &customerID})
}

func (s *subscriptionService) MySubscription(ctx context.Context, customerID primitive.ObjectID) (*SubscriptionView, error) {
	customer, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Subscription == nil {
		return nil, ErrNoSubscription
	}

	view := &SubscriptionView{Subscription: customer.Subscription}
	plan, err := s.planRepo.GetByID(ctx, customer.Subscription.PlanID)
	switch {
	case err == nil:
		view.Plan = plan
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return view, nil
}

// ownPendingPayment loads a payment the customer may still attach a receipt to.
func (s *subscriptionService) ownPendingPayment(ctx context.Context, customerID, paymentID primitive.ObjectID) (*domain.Payment, error) {
	payment, err := s.getPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != customerID {
		return nil, ErrForbidden
	}
	if payment.Status != domain.PaymentPending {
		return nil, ErrPaymentNotPending
	}
	return payment, nil
}

// RequestPaymentProofUploadURL hands the payment's owner a URL to upload a
// receipt to. Nothing is recorded until ConfirmPaymentProof.
func (s *subscriptionService) RequestPaymentProofUploadURL(ctx context.Context, customerID, paymentID primitive.ObjectID, contentType string) (*UploadURL, error) {
	if !allowedProofTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported proof type %q", ErrInvalidInput, contentType)
	}
	if _, err := s.ownPendingPayment(ctx, customerID, paymentID); err != nil {
		return nil, err
	}

	key := storage.ObjectKey(paymentProofPrefix, paymentID.Hex(), contentType)
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign payment proof upload: %w", err)
	}
	return &UploadURL{URL: url, ObjectKey: key, ExpiresAt: s.now().Add(storage.DefaultPresignedURLExpiry)}, nil
}

// ConfirmPaymentProof records an uploaded receipt on the payment for admins
// to review, replacing any earlier one.
func (s *subscriptionService) ConfirmPaymentProof(ctx context.Context, customerID, paymentID primitive.ObjectID, objectKey string) (*domain.Payment, error) {
	if !storage.HasPrefix(objectKey, paymentProofPrefix, paymentID.Hex()) {
		return nil, fmt.Errorf("%w: object key does not belong to this payment", ErrInvalidInput)
	}
	payment, err := s.ownPendingPayment(ctx, customerID, paymentID)
	if err != nil {
		return nil, err
	}
	previous := payment.ProofKey

	if err := s.paymentRepo.SetProofKey(ctx, paymentID, objectKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if previous != "" && previous != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			logger.Errorf("Failed to delete old payment proof %s: %v", previous, err)
		}
	}

	payment.ProofKey = objectKey
	return payment, nil
}

// GetPaymentProofURL returns a download URL for the receipt. Only admins and
// the payment's owner may view it.
func (s *subscriptionService) GetPaymentProofURL(ctx context.Context, requesterID primitive.ObjectID, requesterRole domain.Role, paymentID primitive.ObjectID) (string, error) {
	payment, err := s.getPayment(ctx, paymentID)
	if err != nil {
		return "", err
	}
	if requesterRole != domain.RoleAdmin && payment.UserID != requesterID {
		return "", ErrForbidden
	}
	if payment.ProofKey == "" {
		return "", ErrProofNotFound
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, payment.ProofKey, storage.DefaultPresignedURLExpiry)
}
