package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// their handling time, labeled by message path and result.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ vault.Decorator = Metrics{}

// NewMetrics creates the collectors and registers them with given
// registerer.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vault",
			Name:      "tx_duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"}),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

func (m Metrics) observe(phase string, tx vault.Tx, start time.Time, err error) {
	path := vault.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.total.WithLabelValues(phase, path, codeLabel(code)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	if code == errors.SuccessABCICode {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}

// Check measures the check call.
func (m Metrics) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver measures the deliver call.
func (m Metrics) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}
