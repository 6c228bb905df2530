// Package metrics holds the caller-owned blocked request counter.
package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BlockedCounter counts blocked tracking requests. It is safe for
// concurrent use and optionally mirrors its value to a Prometheus counter.
type BlockedCounter struct {
	total atomic.Uint64
	prom  prometheus.Counter
}

// NewBlockedCounter creates a counter. When reg is non-nil the counter is
// exported as navpolicy_blocked_requests_total.
func NewBlockedCounter(reg prometheus.Registerer) (*BlockedCounter, error) {
	c := &BlockedCounter{}
	if reg == nil {
		return c, nil
	}

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "navpolicy",
		Name:      "blocked_requests_total",
		Help:      "Total number of cross-site tracking requests blocked.",
	})
	if err := reg.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(prometheus.Counter)
		if !ok {
			return nil, err
		}
		counter = existing
	}
	c.prom = counter
	return c, nil
}

// Inc records one blocked request.
func (c *BlockedCounter) Inc() {
	c.total.Add(1)
	if c.prom != nil {
		c.prom.Inc()
	}
}

// Value returns the number of requests blocked so far.
func (c *BlockedCounter) Value() uint64 {
	return c.total.Load()
}

// Handler returns an HTTP handler serving the metrics in reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
