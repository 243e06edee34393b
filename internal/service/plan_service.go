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

// PlanInput is the admin-editable part of a catalog entry.
type PlanInput struct {
	Name     string
	Duration domain.PlanDuration
	Price    float64
	Discount float64
	Features []string
}

func (in PlanInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: plan name is required", ErrInvalidInput)
	}
	if !in.Duration.Valid() {
		return fmt.Errorf("%w: duration must be monthly, quarterly or yearly", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if in.Discount < 0 || in.Discount > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

type PlanService interface {
	CreatePlan(ctx context.Context, in PlanInput) (*domain.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, planID primitive.ObjectID, in PlanInput) (*domain.SubscriptionPlan, error)
	DeletePlan(ctx context.Context, planID primitive.ObjectID) error
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.SubscriptionPlan, error)
}

type planService struct {
	planRepo repository.PlanRepository
}

func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) CreatePlan(ctx context.Context, in PlanInput) (*domain.SubscriptionPlan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	plan := &domain.SubscriptionPlan{
		Name:     strings.TrimSpace(in.Name),
		Duration: in.Duration,
		Price:    in.Price,
		Discount: in.Discount,
		Features: in.Features,
	}
	if plan.Features == nil {
		plan.Features = []string{}
	}
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) UpdatePlan(ctx context.Context, planID primitive.ObjectID, in PlanInput) (*domain.SubscriptionPlan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	plan.Name = strings.TrimSpace(in.Name)
	plan.Duration = in.Duration
	plan.Price = in.Price
	plan.Discount = in.Discount
	if in.Features != nil {
		plan.Features = in.Features
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes the catalog entry. Subscriptions that reference it keep
// their plan id.
func (s *planService) DeletePlan(ctx context.Context, planID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *planService) GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.SubscriptionPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}
