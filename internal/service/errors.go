package service

import (
	"errors"
)

// --- Error Definitions ---
// Handlers map these to HTTP status codes with errors.Is.
var (
	// ErrInvalidInput is wrapped with the offending field: fmt.Errorf("%w: ...", ErrInvalidInput).
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidAction        = errors.New("action must be approve or reject")
	ErrPaymentNotPending    = errors.New("payment is not pending")
	ErrForbidden            = errors.New("access denied")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrAccountBlocked       = errors.New("account is blocked")
	ErrEmailTaken           = errors.New("an account with this email already exists")

	ErrAccountNotFound        = errors.New("account not found")
	ErrPlanNotFound           = errors.New("subscription plan not found")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrSessionRequestNotFound = errors.New("session request not found")
	ErrHistoryNotFound        = errors.New("notification history entry not found")
	ErrFeedbackNotFound       = errors.New("feedback not found")
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrNoSubscription         = errors.New("no subscription found")
	ErrProofNotFound          = errors.New("no payment proof uploaded")
)
