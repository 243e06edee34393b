package api

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves inboxes and admin broadcasts.
type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type PushNotificationRequest struct {
	Message string `json:"message" binding:"required,notblank"`
}

type BroadcastRequest struct {
	Message     string                 `json:"message" binding:"required,notblank"`
	Target      domain.BroadcastTarget `json:"target" binding:"required,oneof=all users trainers individual"`
	RecipientID string                 `json:"recipientId" binding:"omitempty,objectid"`
}

type RecordHistoryRequest struct {
	Message        string                 `json:"message" binding:"required,notblank"`
	Target         domain.BroadcastTarget `json:"target" binding:"required,oneof=all users trainers individual"`
	RecipientCount int64                  `json:"recipientCount" binding:"min=0"`
	RecipientID    string                 `json:"recipientId" binding:"omitempty,objectid"`
	RecipientName  string                 `json:"recipientName"`
}

// PushNotification godoc
// @Summary Push a notification to a customer or trainer
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Recipient account ID"
// @Param notification body PushNotificationRequest true "Message"
// @Success 200 {object} gin.H "message, notifications"
// @Failure 403 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /notifications/{userId} [post]
func (h *NotificationHandler) PushNotification(c *gin.Context) {
	recipientID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var req PushNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	inbox, err := h.notificationService.Push(c.Request.Context(), recipientID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent", "notifications": orEmpty(inbox)})
}

// ListNotifications godoc
// @Summary List an inbox, newest first
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Account ID"
// @Success 200 {object} gin.H "notifications"
// @Router /notifications/{userId} [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	accountID, ok := parseIDParam(c, "userId")
	if !ok || !requireSelfOrAdmin(c, accountID) {
		return
	}
	inbox, err := h.notificationService.List(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": orEmpty(inbox)})
}

// MarkAllRead godoc
// @Summary Mark every notification in an inbox as read
// @Tags Notifications
// @Security BearerAuth
// @Param userId path string true "Account ID"
// @Success 200 {object} gin.H
// @Router /notifications/{userId}/read [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	accountID, ok := parseIDParam(c, "userId")
	if !ok || !requireSelfOrAdmin(c, accountID) {
		return
	}
	if err := h.notificationService.MarkAllRead(c.Request.Context(), accountID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags Notifications
// @Security BearerAuth
// @Param userId path string true "Account ID"
// @Param notificationId path string true "Notification ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /notifications/{userId}/{notificationId}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	accountID, ok := parseIDParam(c, "userId")
	if !ok || !requireSelfOrAdmin(c, accountID) {
		return
	}
	notificationID, ok := parseIDParam(c, "notificationId")
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), accountID, notificationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// Broadcast godoc
// @Summary Send a message to all accounts, all customers, all trainers or one account (admin)
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param broadcast body BroadcastRequest true "Broadcast"
// @Success 200 {object} domain.NotificationHistory
// @Router /notifications/broadcast [post]
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req BroadcastRequest
	if !bindJSON(c, &req) {
		return
	}
	history, err := h.notificationService.Broadcast(c.Request.Context(), adminID, service.BroadcastInput{
		Message:     req.Message,
		Target:      req.Target,
		RecipientID: optionalObjectID(req.RecipientID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// RecordHistory godoc
// @Summary Record a broadcast delivered by the client (admin)
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param history body RecordHistoryRequest true "History entry"
// @Success 201 {object} domain.NotificationHistory
// @Router /notifications/history [post]
func (h *NotificationHandler) RecordHistory(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req RecordHistoryRequest
	if !bindJSON(c, &req) {
		return
	}
	history, err := h.notificationService.RecordHistory(c.Request.Context(), adminID, service.RecordHistoryInput{
		Message:        req.Message,
		Target:         req.Target,
		RecipientCount: req.RecipientCount,
		RecipientID:    optionalObjectID(req.RecipientID),
		RecipientName:  req.RecipientName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, history)
}

// History godoc
// @Summary List recent broadcasts, newest first (admin)
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.NotificationHistory
// @Router /notifications/history [get]
func (h *NotificationHandler) History(c *gin.Context) {
	history, err := h.notificationService.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(history))
}

// DeleteHistory godoc
// @Summary Delete a broadcast history entry (admin)
// @Tags Notifications
// @Security BearerAuth
// @Param historyId path string true "History entry ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /notifications/history/{historyId} [delete]
func (h *NotificationHandler) DeleteHistory(c *gin.Context) {
	historyID, ok := parseIDParam(c, "historyId")
	if !ok {
		return
	}
	if err := h.notificationService.DeleteHistory(c.Request.Context(), historyID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "History entry deleted"})
}
