package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeedbackService interface {
	Submit(ctx context.Context, customerID primitive.ObjectID, trainerID *primitive.ObjectID, rating int, message string) (*domain.Feedback, error)
	List(ctx context.Context) ([]domain.Feedback, error)
	Delete(ctx context.Context, feedbackID primitive.ObjectID) error
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	accountRepo  repository.AccountRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, accountRepo repository.AccountRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, accountRepo: accountRepo}
}

// Submit stores a rating of the center, or of one trainer when trainerID is set.
func (s *feedbackService) Submit(ctx context.Context, customerID primitive.ObjectID, trainerID *primitive.ObjectID, rating int, message string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if trainerID != nil {
		trainer, err := s.accountRepo.GetByID(ctx, *trainerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		if !trainer.IsTrainer() {
			return nil, ErrAccountNotFound
		}
	}

	f := &domain.Feedback{
		CustomerID: customerID,
		TrainerID:  trainerID,
		Rating:     rating,
		Message:    message,
	}
	id, err := s.feedbackRepo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id
	return f, nil
}

func (s *feedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedbackRepo.List(ctx)
}

func (s *feedbackService) Delete(ctx context.Context, feedbackID primitive.ObjectID) error {
	err := s.feedbackRepo.Delete(ctx, feedbackID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFeedbackNotFound
	}
	return err
}
