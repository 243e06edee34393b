package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/storage"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAccountFixture() (*accountService, *MockAccountRepository, *MockFileStorage) {
	repo := new(MockAccountRepository)
	files := new(MockFileStorage)
	return NewAccountService(repo, files).(*accountService), repo, files
}

func TestUpdateProfile_DropsTrainerFieldsForCustomers(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAccountFixture()
	customer := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleCustomer, Name: "Ann"}
	name := "Annie"

	repo.On("GetByID", ctx, customer.ID).Return(customer, nil)
	repo.On("UpdateProfile", ctx, customer.ID, mock.MatchedBy(func(u domain.ProfileUpdate) bool {
		return u.Trainer == nil && u.Name != nil && *u.Name == "Annie"
	})).Return(nil)

	_, err := svc.UpdateProfile(ctx, customer.ID, domain.ProfileUpdate{
		Name:    &name,
		Trainer: &domain.TrainerDetails{HourlyRate: 40},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_TrainerDetailsNormalized(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAccountFixture()
	trainer := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleTrainer}

	repo.On("GetByID", ctx, trainer.ID).Return(trainer, nil)
	repo.On("UpdateProfile", ctx, trainer.ID, mock.MatchedBy(func(u domain.ProfileUpdate) bool {
		return u.Trainer != nil && u.Trainer.Certifications != nil && len(u.Trainer.Specializations) == 1
	})).Return(nil)

	_, err := svc.UpdateProfile(ctx, trainer.ID, domain.ProfileUpdate{
		Trainer: &domain.TrainerDetails{Specializations: []string{"yoga"}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, trainer.ID, domain.ProfileUpdate{
		Trainer: &domain.TrainerDetails{HourlyRate: -1},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfileImage(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("upload url is scoped to the account", func(t *testing.T) {
		svc, repo, files := newAccountFixture()
		repo.On("GetByID", ctx, id).Return(&domain.Account{ID: id}, nil)
		files.On("GeneratePresignedUploadURL", ctx, mock.Anything, "image/png", storage.DefaultPresignedURLExpiry).Return("https://s3/put", nil)

		u, err := svc.RequestProfileImageUploadURL(ctx, id, "image/png")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(u.ObjectKey, "profile-images/"+id.Hex()+"/"))
		assert.Equal(t, "https://s3/put", u.URL)
	})

	t.Run("rejects non images", func(t *testing.T) {
		svc, repo, _ := newAccountFixture()
		_, err := svc.RequestProfileImageUploadURL(ctx, id, "text/html")
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("confirm replaces and deletes the old object", func(t *testing.T) {
		svc, repo, files := newAccountFixture()
		oldKey := "profile-images/" + id.Hex() + "/old.png"
		newKey := "profile-images/" + id.Hex() + "/new.png"
		repo.On("GetByID", ctx, id).Return(&domain.Account{ID: id, Profile: domain.Profile{ProfileImageKey: oldKey}}, nil)
		repo.On("SetProfileImageKey", ctx, id, newKey).Return(nil)
		files.On("DeleteObject", ctx, oldKey).Return(errors.New("already gone"))
		files.On("GeneratePresignedDownloadURL", ctx, newKey, storage.DefaultPresignedURLExpiry).Return("https://s3/get", nil)

		got, err := svc.ConfirmProfileImage(ctx, id, newKey)

		require.NoError(t, err)
		assert.Equal(t, "https://s3/get", got.ImageURL)
		files.AssertExpectations(t)
	})

	t.Run("confirm refuses another account's key", func(t *testing.T) {
		svc, repo, _ := newAccountFixture()
		_, err := svc.ConfirmProfileImage(ctx, id, "profile-images/"+primitive.NewObjectID().Hex()+"/x.png")
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "SetProfileImageKey", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetTrainer(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAccountFixture()
	customer := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleCustomer}
	blocked := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleTrainer, Blocked: true}
	trainer := &domain.Account{ID: primitive.NewObjectID(), Role: domain.RoleTrainer, Name: "Bob"}
	repo.On("GetByID", ctx, customer.ID).Return(customer, nil)
	repo.On("GetByID", ctx, blocked.ID).Return(blocked, nil)
	repo.On("GetByID", ctx, trainer.ID).Return(trainer, nil)

	_, err := svc.GetTrainer(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = svc.GetTrainer(ctx, blocked.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	got, err := svc.GetTrainer(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Account.Name)
	assert.Empty(t, got.ImageURL)
}

func TestAdminAccountOperations(t *testing.T) {
	ctx := context.Background()
	svc, repo, files := newAccountFixture()

	_, err := svc.ListAccounts(ctx, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	missing := primitive.NewObjectID()
	repo.On("SetBlocked", ctx, missing, true).Return(repository.ErrNotFound)
	assert.ErrorIs(t, svc.SetBlocked(ctx, missing, true), ErrAccountNotFound)

	acc := &domain.Account{ID: primitive.NewObjectID(), Profile: domain.Profile{ProfileImageKey: "profile-images/a/b.png"}}
	repo.On("GetByID", ctx, acc.ID).Return(acc, nil)
	repo.On("Delete", ctx, acc.ID).Return(nil)
	files.On("DeleteObject", ctx, "profile-images/a/b.png").Return(nil)

	require.NoError(t, svc.DeleteAccount(ctx, acc.ID))
	files.AssertExpectations(t)
}
