package api

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth          service.AuthService
	Accounts      service.AccountService
	Plans         service.PlanService
	Subscriptions service.SubscriptionService
	Sessions      service.SessionRequestService
	Notifications service.NotificationService
	Feedback      service.FeedbackService
}

// RouteOptions carries the settings routes need besides the services.
type RouteOptions struct {
	JWTSecret     string
	AuthRateLimit float64
	AuthBurst     int
}

func SetupRoutes(router *gin.Engine, svc Services, opts RouteOptions) {
	RegisterValidators()

	authHandler := NewAuthHandler(svc.Auth)
	accountHandler := NewAccountHandler(svc.Accounts)
	planHandler := NewPlanHandler(svc.Plans, svc.Subscriptions)
	sessionHandler := NewSessionRequestHandler(svc.Sessions)
	notificationHandler := NewNotificationHandler(svc.Notifications)
	feedbackHandler := NewFeedbackHandler(svc.Feedback)

	authMiddleware := AuthMiddleware(opts.JWTSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin)
	customerOnly := RoleMiddleware(domain.RoleCustomer)

	router.Use(MetricsMiddleware(), RequestLoggingMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(RateLimitMiddleware(opts.AuthRateLimit, opts.AuthBurst))
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}

	// Public catalog.
	api.GET("/trainers", accountHandler.ListTrainers)
	api.GET("/trainers/:trainerId", accountHandler.GetTrainer)
	api.GET("/Plan", planHandler.ListPlans)
	api.GET("/Plan/:planId", planHandler.GetPlan)

	protected := api.Group("")
	protected.Use(authMiddleware)

	profile := protected.Group("/profile")
	{
		profile.GET("", accountHandler.GetProfile)
		profile.PUT("", accountHandler.UpdateProfile)
		profile.POST("/image-upload-url", accountHandler.RequestProfileImageUploadURL)
		profile.POST("/image", accountHandler.ConfirmProfileImage)
	}

	sessions := protected.Group("/session-requests")
	{
		sessions.POST("/create", sessionHandler.CreateSessionRequest)
		sessions.GET("/trainer/:trainerId", sessionHandler.ListTrainerRequests)
		sessions.GET("/customer/:customerId", sessionHandler.ListCustomerRequests)
		sessions.PUT("/:requestId", sessionHandler.UpdateSessionRequest)
		sessions.DELETE("/:requestId", sessionHandler.DeleteSessionRequest)
	}

	plans := protected.Group("/Plan")
	{
		plans.POST("/purchase", customerOnly, planHandler.Purchase)
		plans.GET("/my-subscription", customerOnly, planHandler.MySubscription)
		plans.GET("/my-payments", customerOnly, planHandler.MyPayments)
		plans.POST("/payments/:paymentId/proof-upload-url", customerOnly, planHandler.RequestPaymentProofUploadURL)
		plans.POST("/payments/:paymentId/proof", customerOnly, planHandler.ConfirmPaymentProof)
		plans.GET("/payments/:paymentId/proof", planHandler.GetPaymentProof)

		plans.POST("/verify-payment", adminOnly, planHandler.VerifyPayment)
		plans.POST("", adminOnly, planHandler.CreatePlan)
		plans.PUT("/:planId", adminOnly, planHandler.UpdatePlan)
		plans.DELETE("/:planId", adminOnly, planHandler.DeletePlan)
	}

	admin := protected.Group("/admin")
	admin.Use(adminOnly)
	{
		admin.GET("/payments", planHandler.ListPayments)
		admin.POST("/payments", planHandler.RecordManualPayment)
		admin.PUT("/payments/:paymentId/approve", planHandler.ApprovePayment)
		admin.PUT("/payments/:paymentId/reject", planHandler.RejectPayment)

		admin.GET("/accounts", accountHandler.ListAccounts)
		admin.PUT("/accounts/:accountId/block", accountHandler.BlockAccount)
		admin.PUT("/accounts/:accountId/unblock", accountHandler.UnblockAccount)
		admin.DELETE("/accounts/:accountId", accountHandler.DeleteAccount)
	}

	notifications := protected.Group("/notifications")
	{
		// history and broadcast are registered before the :userId routes
		notifications.POST("/broadcast", adminOnly, notificationHandler.Broadcast)
		notifications.GET("/history", adminOnly, notificationHandler.History)
		notifications.POST("/history", adminOnly, notificationHandler.RecordHistory)
		notifications.DELETE("/history/:historyId", adminOnly, notificationHandler.DeleteHistory)

		notifications.POST("/:userId", adminOnly, notificationHandler.PushNotification)
		notifications.GET("/:userId", notificationHandler.ListNotifications)
		notifications.PUT("/:userId/read", notificationHandler.MarkAllRead)
		notifications.PUT("/:userId/:notificationId/read", notificationHandler.MarkRead)
	}

	feedback := protected.Group("/feedback")
	{
		feedback.POST("", customerOnly, feedbackHandler.SubmitFeedback)
		feedback.GET("", adminOnly, feedbackHandler.ListFeedback)
		feedback.DELETE("/:feedbackId", adminOnly, feedbackHandler.DeleteFeedback)
	}
}
