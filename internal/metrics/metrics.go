package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vmconsole"

var (
	gatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Requests sent to the voicemail service.",
		},
		[]string{"op", "outcome"}, // outcome: ok, error
	)

	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Duration of requests to the voicemail service.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	storeFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_fallbacks_total",
			Help:      "Loads that served the built-in fallback data.",
		},
		[]string{"store"},
	)

	staleResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_responses_dropped_total",
			Help:      "Mutation responses discarded because a later mutation was already applied.",
		},
		[]string{"store"},
	)

	refreshRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voicemail_refresh_runs_total",
			Help:      "Background voicemail refresh ticks.",
		},
	)
)

// ObserveGateway records one outbound request.
func ObserveGateway(op string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	gatewayRequests.WithLabelValues(op, outcome).Inc()
	gatewayDuration.WithLabelValues(op).Observe(d.Seconds())
}

func Fallback(store string) { storeFallbacks.WithLabelValues(store).Inc() }

func StaleDropped(store string) { staleResponses.WithLabelValues(store).Inc() }

func RefreshRun() { refreshRuns.Inc() }
