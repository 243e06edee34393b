package api

import (
	"alcyxob/fitness-center/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

type FeedbackRequest struct {
	TrainerID string `json:"trainerId" binding:"omitempty,objectid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Message   string `json:"message" binding:"required,notblank"`
}

// SubmitFeedback godoc
// @Summary Rate the center or a trainer (customer)
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param feedback body FeedbackRequest true "Feedback"
// @Success 201 {object} domain.Feedback
// @Router /feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	customerID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	fb, err := h.feedbackService.Submit(c.Request.Context(), customerID, optionalObjectID(req.TrainerID), req.Rating, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// ListFeedback godoc
// @Summary List all feedback (admin)
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Feedback
// @Router /feedback [get]
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	items, err := h.feedbackService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(items))
}

// DeleteFeedback godoc
// @Summary Delete a feedback entry (admin)
// @Tags Feedback
// @Security BearerAuth
// @Param feedbackId path string true "Feedback ID"
// @Success 200 {object} gin.H
// @Router /feedback/{feedbackId} [delete]
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, ok := parseIDParam(c, "feedbackId")
	if !ok {
		return
	}
	if err := h.feedbackService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}
