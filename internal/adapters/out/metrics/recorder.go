// Package metrics exposes allocation and saturation figures to Prometheus.
package metrics

import (
	"production/internal/core/domain/model/alert"
	"production/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements ports.AllocationRecorder on Prometheus collectors.
type Recorder struct {
	allocations   *prometheus.CounterVec
	lineOccupancy *prometheus.GaugeVec
	lineRate      *prometheus.GaugeVec
	alerts        *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "production_allocations_total",
			Help: "Allocation requests by outcome",
		}, []string{"outcome"}),
		lineOccupancy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "production_line_occupancy",
			Help: "Pending and in-process orders on a line after the last allocation",
		}, []string{"line"}),
		lineRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "production_line_occupancy_rate",
			Help: "Occupancy divided by capacity after the last allocation",
		}, []string{"line"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "production_saturation_alerts_total",
			Help: "Saturation alerts raised by severity",
		}, []string{"severity"}),
	}

	for _, c := range []prometheus.Collector{r.allocations, r.lineOccupancy, r.lineRate, r.alerts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Recorder) RecordAllocation(outcome ports.AllocationOutcome) {
	r.allocations.WithLabelValues(string(outcome)).Inc()
}

func (r *Recorder) RecordLineLoad(lineName string, occupancy, capacity int) {
	r.lineOccupancy.WithLabelValues(lineName).Set(float64(occupancy))
	if capacity > 0 {
		r.lineRate.WithLabelValues(lineName).Set(float64(occupancy) / float64(capacity))
	}
}

func (r *Recorder) RecordAlert(severity alert.Severity) {
	r.alerts.WithLabelValues(severity.String()).Inc()
}
