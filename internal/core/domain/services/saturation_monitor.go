package services

import (
	"fmt"
	"time"

	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

const (
	DefaultWarningThreshold  = 0.8
	DefaultCriticalThreshold = 0.9
)

// SaturationMonitor raises one alert per saturated line of a post-assignment
// snapshot. Alerts are never deduplicated against earlier ones.
type SaturationMonitor struct {
	warning  float64
	critical float64
}

// NewSaturationMonitor requires 0 < warning < critical.
func NewSaturationMonitor(warning, critical float64) (SaturationMonitor, error) {
	if warning <= 0 || warning >= critical {
		return SaturationMonitor{}, errs.NewValueIsInvalidErrorWithCause(
			"saturation thresholds",
			fmt.Errorf("warning %.2f must be above 0 and below critical %.2f", warning, critical),
		)
	}
	return SaturationMonitor{warning: warning, critical: critical}, nil
}

func NewDefaultSaturationMonitor() SaturationMonitor {
	return SaturationMonitor{warning: DefaultWarningThreshold, critical: DefaultCriticalThreshold}
}

// Classify maps an occupancy rate to a severity. The second result is false
// when the rate does not warrant an alert.
func (m SaturationMonitor) Classify(rate float64) (alert.Severity, bool) {
	switch {
	case rate >= m.critical:
		return alert.Critical, true
	case rate > m.warning:
		return alert.Warning, true
	default:
		return alert.Unknown, false
	}
}

// Evaluate returns the alerts for snapshot, each referencing orderID.
func (m SaturationMonitor) Evaluate(snapshot []LineLoad, orderID kernel.UUID, now time.Time) ([]*alert.Alert, error) {
	var alerts []*alert.Alert
	for _, load := range snapshot {
		severity, raise := m.Classify(load.Rate())
		if !raise {
			continue
		}

		a, err := alert.NewSaturationAlert(
			kernel.NewUUID(),
			severity,
			load.Line.ID(),
			load.Line.Name(),
			orderID,
			load.Occupancy,
			load.Line.Capacity(),
			now,
		)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}
