package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreatePlan_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   PlanInput
	}{
		{"no name", PlanInput{Duration: domain.DurationMonthly, Price: 10}},
		{"bad duration", PlanInput{Name: "Basic", Duration: "weekly", Price: 10}},
		{"negative price", PlanInput{Name: "Basic", Duration: domain.DurationMonthly, Price: -1}},
		{"discount over 100", PlanInput{Name: "Basic", Duration: domain.DurationMonthly, Price: 10, Discount: 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPlanRepository)
			svc := NewPlanService(repo)

			_, err := svc.CreatePlan(context.Background(), tt.in)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreatePlan(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPlanRepository)
	id := primitive.NewObjectID()
	repo.On("Create", ctx, mock.MatchedBy(func(p *domain.SubscriptionPlan) bool {
		return p.Name == "Gold" && p.Features != nil
	})).Return(id, nil)

	plan, err := NewPlanService(repo).CreatePlan(ctx, PlanInput{Name: " Gold ", Duration: domain.DurationQuarterly, Price: 270, Discount: 10})

	require.NoError(t, err)
	assert.Equal(t, id, plan.ID)
	assert.Equal(t, []string{}, plan.Features)
}

func TestUpdateAndDeletePlan(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPlanRepository)
	svc := NewPlanService(repo)
	existing := &domain.SubscriptionPlan{ID: primitive.NewObjectID(), Name: "Old", Duration: domain.DurationMonthly, Features: []string{"pool"}}
	repo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	updated, err := svc.UpdatePlan(ctx, existing.ID, PlanInput{Name: "New", Duration: domain.DurationYearly, Price: 900})
	require.NoError(t, err)
	assert.Equal(t, domain.DurationYearly, updated.Duration)
	assert.Equal(t, []string{"pool"}, updated.Features, "nil features keep the old list")

	missing := primitive.NewObjectID()
	repo.On("Delete", ctx, missing).Return(repository.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePlan(ctx, missing), ErrPlanNotFound)
}
