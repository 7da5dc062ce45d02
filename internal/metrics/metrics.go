package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	votesCastTotal      prometheus.Counter
	electionTransitions *prometheus.CounterVec
	registerOnce        sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evote",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the election API.",
		}, []string{"method", "path", "status"})

		votesCastTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "evote",
			Name:      "votes_cast_total",
			Help:      "Total votes recorded.",
		})

		electionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evote",
			Name:      "election_transitions_total",
			Help:      "Election status transitions by target status.",
		}, []string{"to"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncVote counts a recorded vote.
func IncVote() {
	if votesCastTotal == nil {
		return
	}
	votesCastTotal.Inc()
}

// IncTransition counts an election moving to the given status.
func IncTransition(to string) {
	if electionTransitions == nil {
		return
	}
	electionTransitions.WithLabelValues(to).Inc()
}
