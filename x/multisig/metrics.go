package multisig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proposalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "xsigners",
		Subsystem: "multisig",
		Name:      "proposals_total",
		Help:      "Number of proposed transactions.",
	})
	votesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xsigners",
		Subsystem: "multisig",
		Name:      "votes_total",
		Help:      "Number of votes cast, proposer approvals excluded.",
	}, []string{"kind"})
	executionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xsigners",
		Subsystem: "multisig",
		Name:      "executions_total",
		Help:      "Number of dispatched transactions by outcome.",
	}, []string{"outcome"})
	cancellationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "xsigners",
		Subsystem: "multisig",
		Name:      "cancellations_total",
		Help:      "Number of transactions removed without execution.",
	})
)
