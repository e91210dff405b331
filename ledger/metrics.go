package ledger

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opTransfer     = "transfer"
	opTransferFrom = "transferFrom"
	opApprove      = "approve"
)

// Result label values.
const (
	resultOK                  = "ok"
	resultInsufficientBalance = "insufficient_balance"
	resultAllowanceExceeded   = "allowance_exceeded"
	resultOverflow            = "overflow"
	resultError               = "error"
)

// Metrics counts ledger operations by their outcome.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics creates Metrics and registers them in reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "token_ledger",
			Name:      "operations_total",
			Help:      "Number of mutating ledger operations by outcome.",
		}, []string{"operation", "result"}),
	}

	if err := reg.Register(m.operations); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(op, resultOf(err)).Inc()
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, ErrInsufficientBalance):
		return resultInsufficientBalance
	case errors.Is(err, ErrAllowanceExceeded):
		return resultAllowanceExceeded
	case errors.Is(err, ErrOverflow):
		return resultOverflow
	default:
		return resultError
	}
}
