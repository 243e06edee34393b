package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_center_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitness_center_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_center_session_requests_total",
			Help: "Session requests created or moved to a status",
		},
		[]string{"status"},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_center_subscription_purchases_total",
			Help: "Subscription purchases by plan duration",
		},
		[]string{"duration"},
	)

	PaymentVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_center_payment_verifications_total",
			Help: "Admin payment verifications by result",
		},
		[]string{"result"},
	)

	NotificationsPushedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_center_notifications_pushed_total",
			Help: "Notifications delivered to inboxes",
		},
		[]string{"kind"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSessionRequest(status string) {
	SessionRequestsTotal.WithLabelValues(status).Inc()
}

func RecordPurchase(duration string) {
	PurchasesTotal.WithLabelValues(duration).Inc()
}

func RecordPaymentVerification(result string) {
	PaymentVerificationsTotal.WithLabelValues(result).Inc()
}

// RecordNotifications adds count deliveries; a broadcast counts every recipient.
func RecordNotifications(kind string, count int64) {
	if count <= 0 {
		return
	}
	NotificationsPushedTotal.WithLabelValues(kind).Add(float64(count))
}
