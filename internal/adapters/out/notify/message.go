// Package notify delivers newly raised alerts to the outside world: a
// websocket hub for dashboards and a structured log line per alert.
package notify

import (
	"time"

	"production/internal/core/domain/model/alert"
)

// AlertMessage is the JSON pushed to websocket clients.
type AlertMessage struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Severity       string    `json:"severity"`
	Message        string    `json:"message"`
	LineID         string    `json:"lineId,omitempty"`
	LineName       string    `json:"lineName"`
	RelatedOrderID string    `json:"relatedOrderId,omitempty"`
	Occupancy      int       `json:"occupancy"`
	Capacity       int       `json:"capacity"`
	Rate           float64   `json:"rate"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newAlertMessage(a *alert.Alert) AlertMessage {
	msg := AlertMessage{
		ID:        a.ID().String(),
		Type:      a.Type(),
		Severity:  a.Severity().String(),
		Message:   a.Message(),
		LineName:  a.LineName(),
		Occupancy: a.Occupancy(),
		Capacity:  a.Capacity(),
		Rate:      a.Rate(),
		CreatedAt: a.CreatedAt(),
	}
	if id := a.LineID(); id != nil {
		msg.LineID = id.String()
	}
	if id := a.RelatedOrderID(); id != nil {
		msg.RelatedOrderID = id.String()
	}
	return msg
}
