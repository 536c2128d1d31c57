package membership

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/campushub/campushub/internal/db/models"
)

var transitions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Namespace: "campushub",
		Name:      "membership_transitions_total",
		Help:      "Number of memberships moved into a status.",
	},
	[]string{"status"},
)

func recordTransition(status models.MembershipStatus) {
	transitions.WithLabelValues(string(status)).Inc()
}
