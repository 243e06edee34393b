package api

import (
	"alcyxob/fitness-center/internal/logger"
	"alcyxob/fitness-center/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var notFoundErrors = []error{
	service.ErrAccountNotFound,
	service.ErrPlanNotFound,
	service.ErrPaymentNotFound,
	service.ErrSessionRequestNotFound,
	service.ErrHistoryNotFound,
	service.ErrFeedbackNotFound,
	service.ErrNotificationNotFound,
	service.ErrNoSubscription,
	service.ErrProofNotFound,
}

// respondError maps a service error to a status code. Anything unrecognised
// is logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrPaymentNotPending):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccountBlocked), errors.Is(err, service.ErrForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	case isNotFound(err):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func isNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
