package api

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignupRequest struct {
	Name     string      `json:"name" binding:"required,notblank"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     domain.Role `json:"role" binding:"required,oneof=customer trainer admin"`
	Phone    string      `json:"phone"`
	AdminKey string      `json:"adminKey"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// Signup godoc
// @Summary Create an account
// @Description Creates a customer, trainer or admin account. Admin signup needs the configured key.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body SignupRequest true "Signup details"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} gin.H "Validation error"
// @Failure 403 {object} gin.H "Admin key missing or wrong"
// @Failure 409 {object} gin.H "Email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
		AdminKey: req.AdminKey,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapAccountToResponse(account, ""))
}

// Login godoc
// @Summary Log in
// @Description Authenticates any role and returns a JWT.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} gin.H "Invalid credentials"
// @Failure 403 {object} gin.H "Account blocked"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, account, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token, Account: MapAccountToResponse(account, "")})
}
