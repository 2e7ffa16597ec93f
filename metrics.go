package simplelog

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "simplelog"

// Metrics counts what the dispatcher and helpers do. A nil *Metrics is valid
// and counts nothing.
type Metrics struct {
	lines               *prometheus.CounterVec
	screenMessages      prometheus.Counter
	onceSuppressed      prometheus.Counter
	attributionFailures prometheus.Counter
	dropped             prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "lines_total",
			Help:      "Lines forwarded to the log sink.",
		}, []string{"category", "verbosity"}),
		screenMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "screen_messages_total",
			Help:      "Messages pushed to the on-screen overlay.",
		}),
		onceSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "once_suppressed_total",
			Help:      "Log once calls skipped by a fired guard.",
		}),
		attributionFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "attribution_failures_total",
				Help: "Scripted log calls made without a " +
					"script frame.",
			},
		),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dropped_total",
			Help:      "Records dropped for an invalid verbosity.",
		}),
	}

	collectors := []prometheus.Collector{
		m.lines, m.screenMessages, m.onceSuppressed,
		m.attributionFailures, m.dropped,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("unable to register metric: %w",
				err)
		}
	}

	return m, nil
}

func (m *Metrics) lineEmitted(category string, v Verbosity) {
	if m == nil {
		return
	}
	m.lines.WithLabelValues(category, v.String()).Inc()
}

func (m *Metrics) screenMessage() {
	if m == nil {
		return
	}
	m.screenMessages.Inc()
}

func (m *Metrics) onceSuppressedCall() {
	if m == nil {
		return
	}
	m.onceSuppressed.Inc()
}

func (m *Metrics) attributionFailed() {
	if m == nil {
		return
	}
	m.attributionFailures.Inc()
}

func (m *Metrics) recordDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}
