package api

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"time"
)

// ProfileResponse is the public part of Profile; the storage key is replaced
// by a presigned URL.
type ProfileResponse struct {
	Age      int    `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Bio      string `json:"bio,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// AccountResponse excludes the password hash and the inbox.
type AccountResponse struct {
	ID           string                         `json:"id"`
	Role         domain.Role                    `json:"role"`
	Name         string                         `json:"name"`
	Email        string                         `json:"email"`
	Phone        string                         `json:"phone,omitempty"`
	Profile      ProfileResponse                `json:"profile"`
	Blocked      bool                           `json:"blocked"`
	Subscription *domain.SubscriptionAssignment `json:"subscription,omitempty"`
	Trainer      *domain.TrainerDetails         `json:"trainer,omitempty"`
	CreatedAt    time.Time                      `json:"createdAt"`
}

// TrainerResponse is what anonymous visitors see of a trainer.
type TrainerResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	Profile         ProfileResponse `json:"profile"`
	Availability    []string        `json:"availability"`
	Specializations []string        `json:"specializations"`
	Certifications  []string        `json:"certifications"`
	ExperienceYears int             `json:"experienceYears"`
	HourlyRate      float64         `json:"hourlyRate"`
}

// SessionRequestResponse is a session request with its counterpart joined in.
type SessionRequestResponse struct {
	domain.SessionRequest
	Customer *domain.AccountSummary `json:"customer,omitempty"`
	Trainer  *domain.AccountSummary `json:"trainer,omitempty"`
}

// PaymentResponse adds whether a receipt has been uploaded.
type PaymentResponse struct {
	domain.Payment
	HasProof bool `json:"hasProof"`
}

type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func mapProfile(p domain.Profile, imageURL string) ProfileResponse {
	return ProfileResponse{Age: p.Age, Gender: p.Gender, Bio: p.Bio, ImageURL: imageURL}
}

// MapAccountToResponse converts a domain Account to an AccountResponse DTO.
func MapAccountToResponse(account *domain.Account, imageURL string) AccountResponse {
	return AccountResponse{
		ID:           account.ID.Hex(),
		Role:         account.Role,
		Name:         account.Name,
		Email:        account.Email,
		Phone:        account.Phone,
		Profile:      mapProfile(account.Profile, imageURL),
		Blocked:      account.Blocked,
		Subscription: account.Subscription,
		Trainer:      account.Trainer,
		CreatedAt:    account.CreatedAt,
	}
}

func MapAccountsToResponse(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, MapAccountToResponse(&accounts[i], ""))
	}
	return out
}

func MapTrainerToResponse(t service.AccountWithImage) TrainerResponse {
	resp := TrainerResponse{
		ID:              t.Account.ID.Hex(),
		Name:            t.Account.Name,
		Email:           t.Account.Email,
		Phone:           t.Account.Phone,
		Profile:         mapProfile(t.Account.Profile, t.ImageURL),
		Availability:    []string{},
		Specializations: []string{},
		Certifications:  []string{},
	}
	if d := t.Account.Trainer; d != nil {
		if d.Availability != nil {
			resp.Availability = d.Availability
		}
		if d.Specializations != nil {
			resp.Specializations = d.Specializations
		}
		if d.Certifications != nil {
			resp.Certifications = d.Certifications
		}
		resp.ExperienceYears = d.ExperienceYears
		resp.HourlyRate = d.HourlyRate
	}
	return resp
}

func MapSessionRequestsToResponse(views []service.SessionRequestView) []SessionRequestResponse {
	out := make([]SessionRequestResponse, 0, len(views))
	for _, v := range views {
		out = append(out, SessionRequestResponse{SessionRequest: v.Request, Customer: v.Customer, Trainer: v.Trainer})
	}
	return out
}

func MapPaymentToResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{Payment: *p, HasProof: p.ProofKey != ""}
}

func MapPaymentsToResponse(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, MapPaymentToResponse(&payments[i]))
	}
	return out
}

func mapUploadURL(u *service.UploadURL) UploadURLResponse {
	return UploadURLResponse{UploadURL: u.URL, ObjectKey: u.ObjectKey, ExpiresAt: u.ExpiresAt}
}

// orEmpty keeps list responses as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
