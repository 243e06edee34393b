package api

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves the plan catalog, purchases and payment verification.
type PlanHandler struct {
	planService         service.PlanService
	subscriptionService service.SubscriptionService
}

func NewPlanHandler(planService service.PlanService, subscriptionService service.SubscriptionService) *PlanHandler {
	return &PlanHandler{planService: planService, subscriptionService: subscriptionService}
}

type PlanRequest struct {
	Name     string              `json:"name" binding:"required,notblank"`
	Duration domain.PlanDuration `json:"duration" binding:"required,oneof=monthly quarterly yearly"`
	Price    float64             `json:"price" binding:"min=0"`
	Discount float64             `json:"discount" binding:"min=0,max=100"`
	Features []string            `json:"features"`
}

func (r PlanRequest) input() service.PlanInput {
	return service.PlanInput{Name: r.Name, Duration: r.Duration, Price: r.Price, Discount: r.Discount, Features: r.Features}
}

type PurchaseRequest struct {
	SubscriptionID string `json:"subscriptionId" binding:"required,objectid"`
	PaymentMethod  string `json:"paymentMethod" binding:"required,notblank"`
	TransactionID  string `json:"transactionId" binding:"required,notblank"`
}

type VerifyPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required,objectid"`
	Action    string `json:"action" binding:"required"`
}

type ManualPaymentRequest struct {
	UserID        string               `json:"userId" binding:"required,objectid"`
	Amount        float64              `json:"amount" binding:"required,gt=0"`
	PaymentMethod string               `json:"paymentMethod" binding:"required,notblank"`
	TransactionID string               `json:"transactionId"`
	Status        domain.PaymentStatus `json:"status" binding:"omitempty,oneof=pending success failed"`
}

// ListPlans godoc
// @Summary List subscription plans
// @Tags Plans
// @Produce json
// @Success 200 {array} domain.SubscriptionPlan
// @Router /Plan [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(plans))
}

// GetPlan godoc
// @Summary Get one subscription plan
// @Tags Plans
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} domain.SubscriptionPlan
// @Router /Plan/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CreatePlan godoc
// @Summary Create a subscription plan (admin)
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body PlanRequest true "Plan"
// @Success 201 {object} domain.SubscriptionPlan
// @Router /Plan [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req PlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.planService.CreatePlan(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan godoc
// @Summary Replace a subscription plan (admin)
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param plan body PlanRequest true "Plan"
// @Success 200 {object} domain.SubscriptionPlan
// @Router /Plan/{planId} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	var req PlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.planService.UpdatePlan(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan godoc
// @Summary Delete a subscription plan (admin)
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} gin.H
// @Router /Plan/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	if err := h.planService.DeletePlan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}

// Purchase godoc
// @Summary Purchase a subscription plan (customer)
// @Description Records a pending payment and a pending subscription. Replaces any current subscription.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purchase body PurchaseRequest true "Purchase"
// @Success 201 {object} gin.H "message, subscription, paymentId"
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /Plan/purchase [post]
func (h *PlanHandler) Purchase(c *gin.Context) {
	customerID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req PurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.subscriptionService.Purchase(c.Request.Context(), customerID, service.PurchaseInput{
		PlanID:        mustObjectID(req.SubscriptionID),
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Subscription purchased, awaiting payment verification",
		"subscription": res.Subscription,
		"paymentId":    res.Payment.ID.Hex(),
	})
}

// MySubscription godoc
// @Summary Get own subscription with its plan (customer)
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "subscription, plan"
// @Failure 404 {object} gin.H
// @Router /Plan/my-subscription [get]
func (h *PlanHandler) MySubscription(c *gin.Context) {
	customerID, _, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.subscriptionService.MySubscription(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": view.Subscription, "plan": view.Plan})
}

// MyPayments godoc
// @Summary List own payments (customer)
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PaymentResponse
// @Router /Plan/my-payments [get]
func (h *PlanHandler) MyPayments(c *gin.Context) {
	customerID, _, ok := currentUser(c)
	if !ok {
		return
	}
	payments, err := h.subscriptionService.MyPayments(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPaymentsToResponse(payments))
}

// VerifyPayment godoc
// @Summary Approve or reject a pending payment (admin)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VerifyPaymentRequest true "paymentId and action (approve|reject)"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Bad action or payment not pending"
// @Failure 404 {object} gin.H
// @Router /Plan/verify-payment [post]
func (h *PlanHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	h.verify(c, mustObjectID(req.PaymentID), req.Action)
}

// ApprovePayment godoc
// @Summary Approve a pending payment (admin)
// @Tags Payments
// @Security BearerAuth
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} gin.H
// @Router /admin/payments/{paymentId}/approve [put]
func (h *PlanHandler) ApprovePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "paymentId")
	if !ok {
		return
	}
	h.verify(c, id, service.ActionApprove)
}

// RejectPayment godoc
// @Summary Reject a pending payment (admin)
// @Tags Payments
// @Security BearerAuth
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} gin.H
// @Router /admin/payments/{paymentId}/reject [put]
func (h *PlanHandler) RejectPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "paymentId")
	if !ok {
		return
	}
	h.verify(c, id, service.ActionReject)
}

func (h *PlanHandler) verify(c *gin.Context, paymentID primitive.ObjectID, action string) {
	adminID, _, ok := currentUser(c)
	if !ok {
		return
	}
	payment, err := h.subscriptionService.VerifyPayment(c.Request.Context(), adminID, paymentID, action)
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "Payment approved"
	if action == service.ActionReject {
		msg = "Payment rejected"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "payment": MapPaymentToResponse(payment)})
}

// ListPayments godoc
// @Summary List payments (admin)
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Only this account's payments"
// @Param status query string false "pending, success or failed"
// @Success 200 {array} PaymentResponse
// @Router /admin/payments [get]
func (h *PlanHandler) ListPayments(c *gin.Context) {
	filter := domain.PaymentFilter{Status: domain.PaymentStatus(c.Query("status"))}
	if raw := c.Query("userId"); raw != "" {
		uid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid userId format")
			return
		}
		filter.UserID = &uid
	}

	payments, err := h.subscriptionService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPaymentsToResponse(payments))
}

// RecordManualPayment godoc
// @Summary Record a payment taken at the desk (admin)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body ManualPaymentRequest true "Payment"
// @Success 201 {object} PaymentResponse
// @Router /admin/payments [post]
func (h *PlanHandler) RecordManualPayment(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req ManualPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.subscriptionService.RecordManualPayment(c.Request.Context(), adminID, service.ManualPaymentInput{
		UserID:        mustObjectID(req.UserID),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Status:        req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPaymentToResponse(payment))
}

// RequestPaymentProofUploadURL godoc
// @Summary Get a presigned URL to upload a payment receipt (customer)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paymentId path string true "Payment ID"
// @Param request body UploadURLRequest true "Receipt content type"
// @Success 200 {object} UploadURLResponse
// @Router /Plan/payments/{paymentId}/proof-upload-url [post]
func (h *PlanHandler) RequestPaymentProofUploadURL(c *gin.Context) {
	customerID, _, ok := currentUser(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "paymentId")
	if !ok {
		return
	}
	var req UploadURLRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.subscriptionService.RequestPaymentProofUploadURL(c.Request.Context(), customerID, paymentID, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUploadURL(u))
}

// ConfirmPaymentProof godoc
// @Summary Attach an uploaded receipt to a pending payment (customer)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paymentId path string true "Payment ID"
// @Param request body ConfirmUploadRequest true "Object key from the upload URL response"
// @Success 200 {object} PaymentResponse
// @Failure 400 {object} gin.H
// @Failure 403 {object} gin.H
// @Router /Plan/payments/{paymentId}/proof [post]
func (h *PlanHandler) ConfirmPaymentProof(c *gin.Context) {
	customerID, _, ok := currentUser(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "paymentId")
	if !ok {
		return
	}
	var req ConfirmUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.subscriptionService.ConfirmPaymentProof(c.Request.Context(), customerID, paymentID, req.ObjectKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPaymentToResponse(payment))
}

// GetPaymentProof godoc
// @Summary Get a presigned URL to view a payment receipt
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} gin.H "url"
// @Router /Plan/payments/{paymentId}/proof [get]
func (h *PlanHandler) GetPaymentProof(c *gin.Context) {
	callerID, role, ok := currentUser(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "paymentId")
	if !ok {
		return
	}
	url, err := h.subscriptionService.GetPaymentProofURL(c.Request.Context(), callerID, role, paymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
