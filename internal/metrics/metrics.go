// Package metrics exposes processing counters on a Prometheus registry,
// served by the admin endpoint.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

type Metrics struct {
	records    *prometheus.CounterVec
	rejections *prometheus.CounterVec
	locks      prometheus.Counter
}

// New registers the ledger collectors on reg. Counters use label values with
// a fixed vocabulary so cardinality stays bounded no matter the input.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_records_total",
			Help: "Processed records by kind and outcome.",
		}, []string{"kind", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_rejections_total",
			Help: "Rejected records by kind and rejection reason.",
		}, []string{"kind", "reason"}),
		locks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_account_locks_total",
			Help: "Accounts locked by an accepted chargeback.",
		}),
	}

	reg.MustRegister(m.records, m.rejections, m.locks)

	return m
}

// Observe records the outcome of one processed record. Safe for concurrent
// use.
func (m *Metrics) Observe(rec core.Record, err error) {
	if err == nil {
		m.records.WithLabelValues(string(rec.Kind), outcomeAccepted).Inc()
		if rec.Kind == core.KindChargeback {
			m.locks.Inc()
		}

		return
	}

	m.records.WithLabelValues(string(rec.Kind), outcomeRejected).Inc()
	m.rejections.WithLabelValues(string(rec.Kind), reason(err)).Inc()
}

// reason maps rejection errors onto stable label values.
func reason(err error) string {
	switch {
	case errors.Is(err, core.ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, core.ErrAmountRequired):
		return "amount_required"
	case errors.Is(err, core.ErrNegativeAmount):
		return "negative_amount"
	case errors.Is(err, core.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, core.ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, core.ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, core.ErrClientMismatch):
		return "client_mismatch"
	case errors.Is(err, core.ErrAlreadyDisputed):
		return "already_disputed"
	case errors.Is(err, core.ErrDisputeNotFound):
		return "dispute_not_found"
	case errors.Is(err, core.ErrInvalidDisputeState):
		return "invalid_dispute_state"
	default:
		return "other"
	}
}
