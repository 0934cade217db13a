package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		httpRequests,
		httpDuration,
		otpSends,
	)
}

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code.",
		},
		[]string{"route", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP handler latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// result: sent|error; purpose: register|password_reset|admin_reset
	otpSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_sends_total",
			Help: "OTP email deliveries by purpose and result.",
		},
		[]string{"purpose", "result"},
	)
)

func ObserveHTTP(route, code string, seconds float64) {
	httpRequests.WithLabelValues(route, code).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}

func IncOTPSend(purpose, result string) {
	otpSends.WithLabelValues(norm(purpose), norm(result)).Inc()
}
