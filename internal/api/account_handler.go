package api

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves profiles, trainer discovery and admin account management.
type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type TrainerDetailsRequest struct {
	Availability    []string `json:"availability"`
	Specializations []string `json:"specializations"`
	Certifications  []string `json:"certifications"`
	ExperienceYears int      `json:"experienceYears" binding:"min=0"`
	HourlyRate      float64  `json:"hourlyRate" binding:"min=0"`
}

// UpdateProfileRequest fields are optional; omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name    *string                `json:"name"`
	Phone   *string                `json:"phone"`
	Age     *int                   `json:"age"`
	Gender  *string                `json:"gender"`
	Bio     *string                `json:"bio"`
	Trainer *TrainerDetailsRequest `json:"trainer"`
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmUploadRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// GetProfile godoc
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccountResponse
// @Router /profile [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	id, _, ok := currentUser(c)
	if !ok {
		return
	}
	acc, err := h.accountService.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAccountToResponse(acc.Account, acc.ImageURL))
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} AccountResponse
// @Router /profile [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	id, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	update := domain.ProfileUpdate{
		Name:   req.Name,
		Phone:  req.Phone,
		Age:    req.Age,
		Gender: req.Gender,
		Bio:    req.Bio,
	}
	if req.Trainer != nil {
		update.Trainer = &domain.TrainerDetails{
			Availability:    req.Trainer.Availability,
			Specializations: req.Trainer.Specializations,
			Certifications:  req.Trainer.Certifications,
			ExperienceYears: req.Trainer.ExperienceYears,
			HourlyRate:      req.Trainer.HourlyRate,
		}
	}

	acc, err := h.accountService.UpdateProfile(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAccountToResponse(acc.Account, acc.ImageURL))
}

// RequestProfileImageUploadURL godoc
// @Summary Get a presigned URL to upload a profile image
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UploadURLRequest true "Image content type"
// @Success 200 {object} UploadURLResponse
// @Router /profile/image-upload-url [post]
func (h *AccountHandler) RequestProfileImageUploadURL(c *gin.Context) {
	id, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req UploadURLRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.accountService.RequestProfileImageUploadURL(c.Request.Context(), id, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUploadURL(u))
}

// ConfirmProfileImage godoc
// @Summary Use an uploaded object as the profile image
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmUploadRequest true "Object key from the upload URL response"
// @Success 200 {object} AccountResponse
// @Router /profile/image [post]
func (h *AccountHandler) ConfirmProfileImage(c *gin.Context) {
	id, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req ConfirmUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	acc, err := h.accountService.ConfirmProfileImage(c.Request.Context(), id, req.ObjectKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAccountToResponse(acc.Account, acc.ImageURL))
}

// ListTrainers godoc
// @Summary List trainers
// @Tags Trainers
// @Produce json
// @Param specialization query string false "Only trainers with this specialization"
// @Success 200 {array} TrainerResponse
// @Router /trainers [get]
func (h *AccountHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.accountService.ListTrainers(c.Request.Context(), c.Query("specialization"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]TrainerResponse, 0, len(trainers))
	for _, t := range trainers {
		resp = append(resp, MapTrainerToResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// GetTrainer godoc
// @Summary Get one trainer
// @Tags Trainers
// @Produce json
// @Param trainerId path string true "Trainer ID"
// @Success 200 {object} TrainerResponse
// @Failure 404 {object} gin.H
// @Router /trainers/{trainerId} [get]
func (h *AccountHandler) GetTrainer(c *gin.Context) {
	id, ok := parseIDParam(c, "trainerId")
	if !ok {
		return
	}
	t, err := h.accountService.GetTrainer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTrainerToResponse(*t))
}

// ListAccounts godoc
// @Summary List accounts of one role (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string true "customer, trainer or admin"
// @Success 200 {array} AccountResponse
// @Router /admin/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	role := domain.Role(c.DefaultQuery("role", string(domain.RoleCustomer)))
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAccountsToResponse(accounts))
}

// BlockAccount godoc
// @Summary Block an account (admin)
// @Tags Admin
// @Security BearerAuth
// @Param accountId path string true "Account ID"
// @Success 200 {object} gin.H
// @Router /admin/accounts/{accountId}/block [put]
func (h *AccountHandler) BlockAccount(c *gin.Context) {
	h.setBlocked(c, true)
}

// UnblockAccount godoc
// @Summary Unblock an account (admin)
// @Tags Admin
// @Security BearerAuth
// @Param accountId path string true "Account ID"
// @Success 200 {object} gin.H
// @Router /admin/accounts/{accountId}/unblock [put]
func (h *AccountHandler) UnblockAccount(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *AccountHandler) setBlocked(c *gin.Context, blocked bool) {
	id, ok := parseIDParam(c, "accountId")
	if !ok {
		return
	}
	if err := h.accountService.SetBlocked(c.Request.Context(), id, blocked); err != nil {
		respondError(c, err)
		return
	}
	msg := "Account unblocked"
	if blocked {
		msg = "Account blocked"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// DeleteAccount godoc
// @Summary Delete an account (admin)
// @Tags Admin
// @Security BearerAuth
// @Param accountId path string true "Account ID"
// @Success 200 {object} gin.H
// @Router /admin/accounts/{accountId} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "accountId")
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
