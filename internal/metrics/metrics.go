package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ClicksProcessed    prometheus.Counter
	ClicksDeadLettered prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		ClicksProcessed:    promauto.NewCounter(prometheus.CounterOpts{Name: "shortener_clicks_processed_total"}),
		ClicksDeadLettered: promauto.NewCounter(prometheus.CounterOpts{Name: "shortener_clicks_deadlettered_total"}),
	}
}

func (m *Metrics) Processed() {
	m.ClicksProcessed.Inc()
}

func (m *Metrics) DeadLettered() {
	m.ClicksDeadLettered.Inc()
}
