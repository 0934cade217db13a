package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		subscriptionTransitions,
	)
}

var (
	// from/to are subscription statuses (pending/active/cancelled/expired).
	subscriptionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_transitions_total",
			Help: "Subscription status transitions.",
		},
		[]string{"from", "to"},
	)
)

func IncSubscriptionTransition(from, to string) {
	subscriptionTransitions.WithLabelValues(norm(from), norm(to)).Inc()
}
