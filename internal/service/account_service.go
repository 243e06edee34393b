package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/logger"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const profileImagePrefix = "profile-images"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// AccountWithImage pairs an account with a short-lived URL for its profile image.
type AccountWithImage struct {
	Account  *domain.Account
	ImageURL string
}

// UploadURL is a presigned PUT target plus the key to confirm afterwards.
type UploadURL struct {
	URL       string
	ObjectKey string
	ExpiresAt time.Time
}

type AccountService interface {
	GetProfile(ctx context.Context, accountID primitive.ObjectID) (*AccountWithImage, error)
	UpdateProfile(ctx context.Context, accountID primitive.ObjectID, update domain.ProfileUpdate) (*AccountWithImage, error)
	RequestProfileImageUploadURL(ctx context.Context, accountID primitive.ObjectID, contentType string) (*UploadURL, error)
	ConfirmProfileImage(ctx context.Context, accountID primitive.ObjectID, objectKey string) (*AccountWithImage, error)

	// Trainer discovery
	ListTrainers(ctx context.Context, specialization string) ([]AccountWithImage, error)
	GetTrainer(ctx context.Context, trainerID primitive.ObjectID) (*AccountWithImage, error)

	// Admin
	ListAccounts(ctx context.Context, role domain.Role) ([]domain.Account, error)
	SetBlocked(ctx context.Context, accountID primitive.ObjectID, blocked bool) error
	DeleteAccount(ctx context.Context, accountID primitive.ObjectID) error
}

type accountService struct {
	accountRepo repository.AccountRepository
	fileStorage storage.FileStorage
	now         func() time.Time
}

func NewAccountService(accountRepo repository.AccountRepository, fileStorage storage.FileStorage) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		fileStorage: fileStorage,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *accountService) getAccount(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// withImage attaches a download URL. A signing failure only costs the image.
func (s *accountService) withImage(ctx context.Context, account *domain.Account) AccountWithImage {
	out := AccountWithImage{Account: account}
	if key := account.Profile.ProfileImageKey; key != "" {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
		if err != nil {
			logger.Errorf("Failed to presign profile image for account %s: %v", account.ID.Hex(), err)
		} else {
			out.ImageURL = url
		}
	}
	return out
}

func (s *accountService) GetProfile(ctx context.Context, accountID primitive.ObjectID) (*AccountWithImage, error) {
	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := s.withImage(ctx, account)
	return &out, nil
}

// UpdateProfile applies the non-nil fields. Trainer details are dropped for
// accounts that are not trainers.
func (s *accountService) UpdateProfile(ctx context.Context, accountID primitive.ObjectID, update domain.ProfileUpdate) (*AccountWithImage, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if update.Age != nil && (*update.Age < 0 || *update.Age > 150) {
		return nil, fmt.Errorf("%w: age out of range", ErrInvalidInput)
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsTrainer() {
		update.Trainer = nil
	} else if update.Trainer != nil {
		if update.Trainer.ExperienceYears < 0 || update.Trainer.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: experience and hourly rate cannot be negative", ErrInvalidInput)
		}
		update.Trainer = normalizeTrainerDetails(update.Trainer)
	}

	if err := s.accountRepo.UpdateProfile(ctx, accountID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, accountID)
}

// normalizeTrainerDetails stores empty lists rather than nulls.
func normalizeTrainerDetails(t *domain.TrainerDetails) *domain.TrainerDetails {
	out := *t
	if out.Availability == nil {
		out.Availability = []string{}
	}
	if out.Specializations == nil {
		out.Specializations = []string{}
	}
	if out.Certifications == nil {
		out.Certifications = []string{}
	}
	return &out
}

func (s *accountService) RequestProfileImageUploadURL(ctx context.Context, accountID primitive.ObjectID, contentType string) (*UploadURL, error) {
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, contentType)
	}
	if _, err := s.getAccount(ctx, accountID); err != nil {
		return nil, err
	}

	key := storage.ObjectKey(profileImagePrefix, accountID.Hex(), contentType)
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign profile image upload: %w", err)
	}
	return &UploadURL{URL: url, ObjectKey: key, ExpiresAt: s.now().Add(storage.DefaultPresignedURLExpiry)}, nil
}

// ConfirmProfileImage points the profile at an uploaded object and removes
// the previous one from storage.
func (s *accountService) ConfirmProfileImage(ctx context.Context, accountID primitive.ObjectID, objectKey string) (*AccountWithImage, error) {
	if !storage.HasPrefix(objectKey, profileImagePrefix, accountID.Hex()) {
		return nil, fmt.Errorf("%w: object key does not belong to this account", ErrInvalidInput)
	}
	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	previous := account.Profile.ProfileImageKey

	if err := s.accountRepo.SetProfileImageKey(ctx, accountID, objectKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if previous != "" && previous != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			logger.Errorf("Failed to delete old profile image %s: %v", previous, err)
		}
	}

	account.Profile.ProfileImageKey = objectKey
	out := s.withImage(ctx, account)
	return &out, nil
}

func (s *accountService) ListTrainers(ctx context.Context, specialization string) ([]AccountWithImage, error) {
	trainers, err := s.accountRepo.ListTrainers(ctx, strings.TrimSpace(specialization))
	if err != nil {
		return nil, err
	}
	out := make([]AccountWithImage, 0, len(trainers))
	for i := range trainers {
		out = append(out, s.withImage(ctx, &trainers[i]))
	}
	return out, nil
}

func (s *accountService) GetTrainer(ctx context.Context, trainerID primitive.ObjectID) (*AccountWithImage, error) {
	account, err := s.getAccount(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if !account.IsTrainer() || account.Blocked {
		return nil, ErrAccountNotFound
	}
	out := s.withImage(ctx, account)
	return &out, nil
}

func (s *accountService) ListAccounts(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	return s.accountRepo.ListByRole(ctx, role)
}

func (s *accountService) SetBlocked(ctx context.Context, accountID primitive.ObjectID, blocked bool) error {
	err := s.accountRepo.SetBlocked(ctx, accountID, blocked)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// DeleteAccount removes the account document and its profile image. Payments,
// session requests and feedback referencing it are kept.
func (s *accountService) DeleteAccount(ctx context.Context, accountID primitive.ObjectID) error {
	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.accountRepo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if key := account.Profile.ProfileImageKey; key != "" {
		if err := s.fileStorage.DeleteObject(ctx, key); err != nil {
			logger.Errorf("Failed to delete profile image %s of deleted account: %v", key, err)
		}
	}
	return nil
}
