package api

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionRequestHandler serves the booking workflow between customers and trainers.
type SessionRequestHandler struct {
	sessionService service.SessionRequestService
}

func NewSessionRequestHandler(sessionService service.SessionRequestService) *SessionRequestHandler {
	return &SessionRequestHandler{sessionService: sessionService}
}

type CreateSessionRequestRequest struct {
	CustomerID    string `json:"customerId" binding:"required,objectid"`
	TrainerID     string `json:"trainerId" binding:"required,objectid"`
	Message       string `json:"message"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}

type UpdateSessionRequestRequest struct {
	Status          domain.SessionRequestStatus `json:"status" binding:"required,oneof=pending accepted rejected scheduled completed cancelled"`
	TrainerResponse *string                     `json:"trainerResponse"`
	ScheduledDate   *string                     `json:"scheduledDate"`
	ScheduledTime   *string                     `json:"scheduledTime"`
}

// CreateSessionRequest godoc
// @Summary Ask a trainer for a session
// @Description Customers may only create requests for themselves; admins may create them for anyone.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSessionRequestRequest true "Session request"
// @Success 201 {object} gin.H "message, sessionRequest"
// @Failure 404 {object} gin.H "Customer or trainer not found"
// @Router /session-requests/create [post]
func (h *SessionRequestHandler) CreateSessionRequest(c *gin.Context) {
	callerID, role, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateSessionRequestRequest
	if !bindJSON(c, &req) {
		return
	}

	customerID := mustObjectID(req.CustomerID)
	switch role {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if customerID != callerID {
			abortWithError(c, http.StatusForbidden, "Access denied")
			return
		}
	default:
		abortWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	sr, err := h.sessionService.Create(c.Request.Context(), service.CreateSessionRequestInput{
		CustomerID:    customerID,
		TrainerID:     mustObjectID(req.TrainerID),
		Message:       req.Message,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Session request sent", "sessionRequest": sr})
}

// ListTrainerRequests godoc
// @Summary List a trainer's incoming session requests
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param trainerId path string true "Trainer ID"
// @Success 200 {array} SessionRequestResponse
// @Router /session-requests/trainer/{trainerId} [get]
func (h *SessionRequestHandler) ListTrainerRequests(c *gin.Context) {
	trainerID, ok := parseIDParam(c, "trainerId")
	if !ok || !requireSelfOrAdmin(c, trainerID) {
		return
	}
	views, err := h.sessionService.ListForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionRequestsToResponse(views))
}

// ListCustomerRequests godoc
// @Summary List a customer's session requests
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param customerId path string true "Customer ID"
// @Success 200 {array} SessionRequestResponse
// @Router /session-requests/customer/{customerId} [get]
func (h *SessionRequestHandler) ListCustomerRequests(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok || !requireSelfOrAdmin(c, customerID) {
		return
	}
	views, err := h.sessionService.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionRequestsToResponse(views))
}

// UpdateSessionRequest godoc
// @Summary Respond to a session request
// @Description Sets the status and optionally a reply and schedule. Scheduling needs both date and time.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Session request ID"
// @Param update body UpdateSessionRequestRequest true "Update"
// @Success 200 {object} gin.H "message, sessionRequest"
// @Failure 400 {object} gin.H
// @Failure 403 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /session-requests/{requestId} [put]
func (h *SessionRequestHandler) UpdateSessionRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	callerID, role, ok := currentUser(c)
	if !ok {
		return
	}
	var req UpdateSessionRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	caller := service.Caller{ID: callerID, Role: role}
	sr, err := h.sessionService.Update(c.Request.Context(), caller, requestID, domain.SessionRequestUpdate{
		Status:          req.Status,
		TrainerResponse: req.TrainerResponse,
		ScheduledDate:   req.ScheduledDate,
		ScheduledTime:   req.ScheduledTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session request updated", "sessionRequest": sr})
}

// DeleteSessionRequest godoc
// @Summary Delete a session request
// @Tags Sessions
// @Security BearerAuth
// @Param requestId path string true "Session request ID"
// @Success 200 {object} gin.H
// @Failure 403 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /session-requests/{requestId} [delete]
func (h *SessionRequestHandler) DeleteSessionRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	callerID, role, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.sessionService.Delete(c.Request.Context(), service.Caller{ID: callerID, Role: role}, requestID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session request deleted"})
}
