package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/logger"
	"alcyxob/fitness-center/internal/metrics"
	"alcyxob/fitness-center/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateSessionRequestInput is a customer's booking request.
type CreateSessionRequestInput struct {
	CustomerID    primitive.ObjectID
	TrainerID     primitive.ObjectID
	Message       string
	PreferredDate string
	PreferredTime string
}

// SessionRequestView is a request with its counterpart joined in. Only the
// side the caller did not ask about is set; it is nil if that account is gone.
type SessionRequestView struct {
	Request  domain.SessionRequest
	Customer *domain.AccountSummary
	Trainer  *domain.AccountSummary
}

// Caller identifies who is acting on an existing session request.
type Caller struct {
	ID   primitive.ObjectID
	Role domain.Role
}

type SessionRequestService interface {
	Create(ctx context.Context, in CreateSessionRequestInput) (*domain.SessionRequest, error)
	ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]SessionRequestView, error)
	ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]SessionRequestView, error)
	Update(ctx context.Context, caller Caller, requestID primitive.ObjectID, update domain.SessionRequestUpdate) (*domain.SessionRequest, error)
	Delete(ctx context.Context, caller Caller, requestID primitive.ObjectID) error
}

type sessionRequestService struct {
	requestRepo repository.SessionRequestRepository
	accountRepo repository.AccountRepository
	inbox       *inbox
}

func NewSessionRequestService(
	requestRepo repository.SessionRequestRepository,
	accountRepo repository.AccountRepository,
	notificationLimit int,
) SessionRequestService {
	return &sessionRequestService{
		requestRepo: requestRepo,
		accountRepo: accountRepo,
		inbox:       newInbox(accountRepo, notificationLimit, nil),
	}
}

// getRole loads an account and requires it to have role.
func (s *sessionRequestService) getRole(ctx context.Context, id primitive.ObjectID, role domain.Role) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", ErrAccountNotFound, role, id.Hex())
		}
		return nil, err
	}
	if account.Role != role {
		return nil, fmt.Errorf("%w: %s %s", ErrAccountNotFound, role, id.Hex())
	}
	return account, nil
}

// Create stores a pending request and tells the trainer. Nothing stops a
// customer from sending the same trainer several requests.
func (s *sessionRequestService) Create(ctx context.Context, in CreateSessionRequestInput) (*domain.SessionRequest, error) {
	customer, err := s.getRole(ctx, in.CustomerID, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	trainer, err := s.getRole(ctx, in.TrainerID, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}

	req := &domain.SessionRequest{
		CustomerID:    customer.ID,
		TrainerID:     trainer.ID,
		Message:       strings.TrimSpace(in.Message),
		PreferredDate: strings.TrimSpace(in.PreferredDate),
		PreferredTime: strings.TrimSpace(in.PreferredTime),
		Status:        domain.SessionPending,
	}
	id, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id
	metrics.RecordSessionRequest(string(domain.SessionPending))

	msg := fmt.Sprintf("New session request from %s", customer.Name)
	if err := s.inbox.deliver(ctx, trainer.ID, msg, "session_request"); err != nil {
		logger.Errorf("Session request %s saved but trainer %s was not notified: %v", id.Hex(), trainer.ID.Hex(), err)
	}
	return req, nil
}

func (s *sessionRequestService) ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]SessionRequestView, error) {
	reqs, err := s.requestRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.CustomerID)
	}
	customers, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]SessionRequestView, 0, len(reqs))
	for _, r := range reqs {
		views = append(views, SessionRequestView{Request: r, Customer: customers[r.CustomerID]})
	}
	return views, nil
}

func (s *sessionRequestService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]SessionRequestView, error) {
	reqs, err := s.requestRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.TrainerID)
	}
	trainers, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]SessionRequestView, 0, len(reqs))
	for _, r := range reqs {
		views = append(views, SessionRequestView{Request: r, Trainer: trainers[r.TrainerID]})
	}
	return views, nil
}

func (s *sessionRequestService) summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.AccountSummary, error) {
	out := make(map[primitive.ObjectID]*domain.AccountSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	accounts, err := s.accountRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		summary := accounts[i].Summary()
		out[summary.ID] = &summary
	}
	return out, nil
}

func (s *sessionRequestService) load(ctx context.Context, requestID primitive.ObjectID) (*domain.SessionRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

// isParty reports whether caller is the request's customer or trainer.
func isParty(caller Caller, req *domain.SessionRequest) bool {
	return caller.ID == req.CustomerID || caller.ID == req.TrainerID
}

// canSetStatus decides who may move a request to status. Only the trainer
// answers a request; either side may cancel or complete it. Admins may do anything.
func canSetStatus(caller Caller, req *domain.SessionRequest, status domain.SessionRequestStatus) bool {
	if caller.Role == domain.RoleAdmin {
		return true
	}
	switch status {
	case domain.SessionCancelled, domain.SessionCompleted:
		return isParty(caller, req)
	default:
		return caller.ID == req.TrainerID
	}
}

// Update overwrites the provided fields. Any status may follow any other.
// Accepting, rejecting or scheduling notifies the customer after the save.
func (s *sessionRequestService) Update(ctx context.Context, caller Caller, requestID primitive.ObjectID, update domain.SessionRequestUpdate) (*domain.SessionRequest, error) {
	if !update.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, update.Status)
	}

	req, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !canSetStatus(caller, req, update.Status) {
		return nil, fmt.Errorf("%w: cannot set session request %s to %s", ErrForbidden, requestID.Hex(), update.Status)
	}

	req.Status = update.Status
	if update.TrainerResponse != nil {
		req.TrainerResponse = strings.TrimSpace(*update.TrainerResponse)
	}
	if update.ScheduledDate != nil {
		req.ScheduledDate = strings.TrimSpace(*update.ScheduledDate)
	}
	if update.ScheduledTime != nil {
		req.ScheduledTime = strings.TrimSpace(*update.ScheduledTime)
	}
	if req.Status == domain.SessionScheduled && (req.ScheduledDate == "" || req.ScheduledTime == "") {
		return nil, fmt.Errorf("%w: scheduledDate and scheduledTime are required to schedule", ErrInvalidInput)
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionRequestNotFound
		}
		return nil, err
	}
	metrics.RecordSessionRequest(string(req.Status))

	s.notifyCustomer(ctx, req)
	return req, nil
}

// notifyCustomer is best effort; the saved update stands either way.
func (s *sessionRequestService) notifyCustomer(ctx context.Context, req *domain.SessionRequest) {
	switch req.Status {
	case domain.SessionAccepted, domain.SessionRejected, domain.SessionScheduled:
	default:
		return
	}

	trainer, err := s.accountRepo.GetByID(ctx, req.TrainerID)
	if err != nil {
		logger.Errorf("Session request %s: cannot load trainer %s for notification: %v", req.ID.Hex(), req.TrainerID.Hex(), err)
		return
	}
	if err := s.inbox.deliver(ctx, req.CustomerID, sessionUpdateMessage(req, trainer.Name), "session_update"); err != nil {
		logger.Errorf("Session request %s updated but customer %s was not notified: %v", req.ID.Hex(), req.CustomerID.Hex(), err)
	}
}

func sessionUpdateMessage(req *domain.SessionRequest, trainerName string) string {
	switch req.Status {
	case domain.SessionAccepted:
		return fmt.Sprintf("Your session request has been accepted by %s.", trainerName)
	case domain.SessionRejected:
		return fmt.Sprintf("Your session request has been rejected by %s.", trainerName)
	default:
		return fmt.Sprintf("Your session with %s has been scheduled for %s at %s.", trainerName, req.ScheduledDate, req.ScheduledTime)
	}
}

// Delete removes a request. Only its customer, its trainer or an admin may.
func (s *sessionRequestService) Delete(ctx context.Context, caller Caller, requestID primitive.ObjectID) error {
	req, err := s.load(ctx, requestID)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin && !isParty(caller, req) {
		return fmt.Errorf("%w: session request %s", ErrForbidden, requestID.Hex())
	}

	err = s.requestRepo.Delete(ctx, requestID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionRequestNotFound
	}
	return err
}
