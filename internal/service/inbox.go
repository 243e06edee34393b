package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/metrics"
	"alcyxob/fitness-center/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// inbox appends notifications to account documents, trimming each inbox
// to limit entries.
type inbox struct {
	accounts repository.AccountRepository
	limit    int
	now      func() time.Time
}

func newInbox(accounts repository.AccountRepository, limit int, now func() time.Time) *inbox {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &inbox{accounts: accounts, limit: limit, now: now}
}

func (b *inbox) deliver(ctx context.Context, accountID primitive.ObjectID, message, kind string) error {
	if err := b.accounts.PushNotification(ctx, accountID, domain.NewNotification(message, b.now()), b.limit); err != nil {
		return err
	}
	metrics.RecordNotifications(kind, 1)
	return nil
}
