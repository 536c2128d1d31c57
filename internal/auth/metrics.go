package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	decisionAllow = "allow"
	decisionDeny  = "deny"
)

var decisions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Namespace: "campushub",
		Name:      "authorization_decisions_total",
		Help:      "Number of authorization decisions, by flag and outcome.",
	},
	[]string{"flag", "decision"},
)

func recordDecision(flag Flag, allowed bool) {
	label := string(flag)
	if label == "" {
		label = "any_role"
	}

	decision := decisionDeny
	if allowed {
		decision = decisionAllow
	}

	decisions.WithLabelValues(label, decision).Inc()
}
