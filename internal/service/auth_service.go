package service

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrTokenGeneration = errors.New("failed to generate authentication token")
)

// RegisterInput carries a signup request. AdminKey is only read for admin signups.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
	AdminKey string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (token string, account *domain.Account, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	accountRepo    repository.AccountRepository
	jwtSecret      string
	jwtExpiration  time.Duration
	adminSignupKey string
}

// NewAuthService creates a new instance of authService.
func NewAuthService(accountRepo repository.AccountRepository, jwtSecret string, jwtExpiration time.Duration, adminSignupKey string) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour // Default to 1 hour if not set properly
	}
	return &authService{
		accountRepo:    accountRepo,
		jwtSecret:      jwtSecret,
		jwtExpiration:  jwtExpiration,
		adminSignupKey: adminSignupKey,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account of any role. Emails are unique across roles.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	// 1. Basic input validation
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	// Admin signup is closed unless a key is configured and matched.
	if in.Role == domain.RoleAdmin {
		if s.adminSignupKey == "" || subtle.ConstantTimeCompare([]byte(in.AdminKey), []byte(s.adminSignupKey)) != 1 {
			return nil, ErrForbidden
		}
	}

	// 2. Check if the email is already taken, by any role
	_, err := s.accountRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err // Propagate unexpected repository errors
	}

	// 3. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// 4. Create the account. ID and timestamps are set by the repository.
	account := &domain.Account{
		Role:         in.Role,
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Phone:        strings.TrimSpace(in.Phone),
	}
	// Trainers start with empty lists so clients never see null.
	if in.Role == domain.RoleTrainer {
		account.Trainer = &domain.TrainerDetails{
			Availability:    []string{},
			Specializations: []string{},
			Certifications:  []string{},
		}
	}

	id, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		// The unique index catches a concurrent signup that passed the check above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	account.ID = id

	// Remove password hash before returning
	account.PasswordHash = ""
	return account, nil
}

// Login checks credentials and issues a JWT. Blocked accounts are refused here
// and only here; issued tokens stay valid until they expire.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed // Unknown email maps to auth failure
		}
		return "", nil, err
	}

	// Password mismatch gets the same error as an unknown email
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}
	// Blocked is only reported after a correct password.
	if account.Blocked {
		return "", nil, ErrAccountBlocked
	}

	// Authentication successful - generate JWT
	token, err := s.generateJWT(account)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	// Clear password hash before returning the account
	account.PasswordHash = ""
	return token, account, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`  // Account ID
	Role   domain.Role `json:"role"` // Account role
	jwt.RegisteredClaims
}

// generateJWT creates a signed HS256 token for the given account.
func (s *authService) generateJWT(account *domain.Account) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: account.ID.Hex(),
		Role:   account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.Hex(), // Subject is the account ID too
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fitness-center",
			// Audience: []string{"fitness-clients"}, // Optional: Specify intended recipients
		},
	}

	// Create the token with the claims and sign it with the secret key

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
