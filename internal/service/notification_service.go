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
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BroadcastInput addresses a message to a class of accounts, or to one
// account when Target is individual.
type BroadcastInput struct {
	Message     string
	Target      domain.BroadcastTarget
	RecipientID *primitive.ObjectID
}

// RecordHistoryInput logs a broadcast that a client delivered push by push.
type RecordHistoryInput struct {
	Message        string
	Target         domain.BroadcastTarget
	RecipientCount int64
	RecipientID    *primitive.ObjectID
	RecipientName  string
}

type NotificationService interface {
	Push(ctx context.Context, recipientID primitive.ObjectID, message string) ([]domain.Notification, error)
	List(ctx context.Context, accountID primitive.ObjectID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, accountID, notificationID primitive.ObjectID) error
	MarkAllRead(ctx context.Context, accountID primitive.ObjectID) error

	Broadcast(ctx context.Context, adminID primitive.ObjectID, in BroadcastInput) (*domain.NotificationHistory, error)
	RecordHistory(ctx context.Context, adminID primitive.ObjectID, in RecordHistoryInput) (*domain.NotificationHistory, error)
	History(ctx context.Context) ([]domain.NotificationHistory, error)
	DeleteHistory(ctx context.Context, historyID primitive.ObjectID) error
}

type notificationService struct {
	accountRepo  repository.AccountRepository
	historyRepo  repository.NotificationHistoryRepository
	inbox        *inbox
	historyLimit int
	now          func() time.Time
}

// NewNotificationService wires the inbox cap and the number of history rows
// returned by History.
func NewNotificationService(
	accountRepo repository.AccountRepository,
	historyRepo repository.NotificationHistoryRepository,
	maxPerAccount int,
	historyLimit int,
) NotificationService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	now := func() time.Time { return time.Now().UTC() }
	return &notificationService{
		accountRepo:  accountRepo,
		historyRepo:  historyRepo,
		inbox:        newInbox(accountRepo, maxPerAccount, now),
		historyLimit: historyLimit,
		now:          now,
	}
}

// recipient loads an account that can receive notifications. Admins have no inbox.
func (s *notificationService) recipient(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if !account.IsCustomer() && !account.IsTrainer() {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// Push appends message to one inbox and returns that inbox, newest first.
func (s *notificationService) Push(ctx context.Context, recipientID primitive.ObjectID, message string) ([]domain.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if _, err := s.recipient(ctx, recipientID); err != nil {
		return nil, err
	}
	if err := s.inbox.deliver(ctx, recipientID, message, "direct"); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return s.List(ctx, recipientID)
}

func (s *notificationService) List(ctx context.Context, accountID primitive.ObjectID) ([]domain.Notification, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return newestFirst(account.Notifications), nil
}

// newestFirst reverses the stored append order.
func newestFirst(stored []domain.Notification) []domain.Notification {
	out := make([]domain.Notification, len(stored))
	for i, n := range stored {
		out[len(stored)-1-i] = n
	}
	return out
}

func (s *notificationService) MarkRead(ctx context.Context, accountID, notificationID primitive.ObjectID) error {
	err := s.accountRepo.MarkNotificationRead(ctx, accountID, notificationID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationService) MarkAllRead(ctx context.Context, accountID primitive.ObjectID) error {
	err := s.accountRepo.MarkAllNotificationsRead(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// Broadcast delivers message server side, one update per target class, and
// records the result in the history log.
func (s *notificationService) Broadcast(ctx context.Context, adminID primitive.ObjectID, in BroadcastInput) (*domain.NotificationHistory, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if !in.Target.Valid() {
		return nil, fmt.Errorf("%w: target must be all, users, trainers or individual", ErrInvalidInput)
	}

	history := &domain.NotificationHistory{
		Message:   message,
		Target:    in.Target,
		SentBy:    adminID,
		CreatedAt: s.now(),
	}

	if in.Target == domain.TargetIndividual {
		if in.RecipientID == nil || in.RecipientID.IsZero() {
			return nil, fmt.Errorf("%w: recipientId is required for individual broadcasts", ErrInvalidInput)
		}
		account, err := s.recipient(ctx, *in.RecipientID)
		if err != nil {
			return nil, err
		}
		if err := s.inbox.deliver(ctx, account.ID, message, "broadcast"); err != nil {
			return nil, err
		}
		history.RecipientCount = 1
		history.RecipientID = &account.ID
		history.RecipientName = account.Name
	} else {
		n := domain.NewNotification(message, history.CreatedAt)
		count, err := s.accountRepo.PushNotificationToRoles(ctx, in.Target.Roles(), n, s.inbox.limit)
		if err != nil {
			return nil, err
		}
		metrics.RecordNotifications("broadcast", count)
		history.RecipientCount = count
	}

	id, err := s.historyRepo.Create(ctx, history)
	if err != nil {
		// Delivery already happened; a missing audit row is not worth failing the request.
		logger.Errorf("Broadcast delivered to %d accounts but history was not recorded: %v", history.RecipientCount, err)
		return history, nil
	}
	history.ID = id
	return history, nil
}

func (s *notificationService) RecordHistory(ctx context.Context, adminID primitive.ObjectID, in RecordHistoryInput) (*domain.NotificationHistory, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if !in.Target.Valid() {
		return nil, fmt.Errorf("%w: target must be all, users, trainers or individual", ErrInvalidInput)
	}
	if in.RecipientCount < 0 {
		return nil, fmt.Errorf("%w: recipientCount cannot be negative", ErrInvalidInput)
	}

	history := &domain.NotificationHistory{
		Message:        message,
		Target:         in.Target,
		RecipientCount: in.RecipientCount,
		RecipientID:    in.RecipientID,
		RecipientName:  strings.TrimSpace(in.RecipientName),
		SentBy:         adminID,
		CreatedAt:      s.now(),
	}
	id, err := s.historyRepo.Create(ctx, history)
	if err != nil {
		return nil, err
	}
	history.ID = id
	return history, nil
}

func (s *notificationService) History(ctx context.Context) ([]domain.NotificationHistory, error) {
	return s.historyRepo.ListRecent(ctx, s.historyLimit)
}

func (s *notificationService) DeleteHistory(ctx context.Context, historyID primitive.ObjectID) error {
	err := s.historyRepo.Delete(ctx, historyID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrHistoryNotFound
	}
	return err
}
