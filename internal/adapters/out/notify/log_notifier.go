package notify

import (
	"context"
	"log/slog"

	"production/internal/core/domain/model/alert"
	"production/internal/core/ports"
)

// LogNotifier writes one structured record per alert: critical alerts at
// error level, the rest at warn.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "saturation_monitor")}
}

func (n *LogNotifier) Notify(ctx context.Context, alerts []*alert.Alert) {
	for _, a := range alerts {
		level := slog.LevelWarn
		if a.Severity() == alert.Critical {
			level = slog.LevelError
		}
		msg := newAlertMessage(a)
		n.logger.Log(ctx, level, "line saturation",
			"alert_id", msg.ID,
			"severity", msg.Severity,
			"line", msg.LineName,
			"occupancy", msg.Occupancy,
			"capacity", msg.Capacity,
			"rate", msg.Rate,
			"order_id", msg.RelatedOrderID,
		)
	}
}

// Fanout forwards every batch to each notifier in turn.
type Fanout []ports.AlertNotifier

func (f Fanout) Notify(ctx context.Context, alerts []*alert.Alert) {
	for _, n := range f {
		n.Notify(ctx, alerts)
	}
}
