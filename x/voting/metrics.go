package voting

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "voting"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Number of proposals created.
	ProposalsCreated metrics.Counter
	// Number of ballots cast, re-votes included.
	VotesCast metrics.Counter
	// Number of proposals executed.
	ProposalsExecuted metrics.Counter
	// Number of execution attempts rejected by a failing action.
	ExecutionFailures metrics.Counter
	// ID of the last created proposal.
	LastProposalID metrics.Gauge
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
func PrometheusMetrics(namespace string) *Metrics {
	return &Metrics{
		ProposalsCreated: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "proposals_created",
			Help:      "Number of proposals created.",
		}, []string{}),
		VotesCast: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "votes_cast",
			Help:      "Number of ballots cast.",
		}, []string{"supports"}),
		ProposalsExecuted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "proposals_executed",
			Help:      "Number of proposals executed.",
		}, []string{}),
		ExecutionFailures: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "execution_failures",
			Help:      "Number of execution attempts rejected by a failing action.",
		}, []string{}),
		LastProposalID: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "last_proposal_id",
			Help:      "ID of the last created proposal.",
		}, []string{}),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		ProposalsCreated:  discard.NewCounter(),
		VotesCast:         discard.NewCounter(),
		ProposalsExecuted: discard.NewCounter(),
		ExecutionFailures: discard.NewCounter(),
		LastProposalID:    discard.NewGauge(),
	}
}
