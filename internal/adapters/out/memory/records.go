package memory

import (
	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
)

func lineToRecord(l *line.Line) lineRecord {
	return lineRecord{
		id:       l.ID(),
		name:     l.Name(),
		capacity: l.Capacity(),
		status:   l.Status(),
	}
}

func orderToRecord(o *order.WorkOrder) order.Record {
	return order.Record{
		ID:             o.ID(),
		ExternalRef:    o.ExternalRef(),
		Customer:       o.Customer(),
		Priority:       o.Priority(),
		Status:         o.Status(),
		LineID:         o.LineID(),
		MaterialType:   o.MaterialType(),
		EstimatedHours: o.EstimatedHours(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		StartedAt:      o.StartedAt(),
		CompletedAt:    o.CompletedAt(),
	}
}

func stepToRecord(s *step.ProcessStep) step.Record {
	return step.Record{
		ID:          s.ID(),
		OrderID:     s.OrderID(),
		Number:      s.Number(),
		Name:        s.Name(),
		Status:      s.Status(),
		Operator:    s.Operator(),
		Data:        s.Data(),
		Photos:      s.Photos(),
		StartedAt:   s.StartedAt(),
		CompletedAt: s.CompletedAt(),
	}
}

func alertToRecord(a *alert.Alert) alert.Record {
	return alert.Record{
		ID:             a.ID(),
		Type:           a.Type(),
		Severity:       a.Severity(),
		Message:        a.Message(),
		LineID:         a.LineID(),
		LineName:       a.LineName(),
		RelatedOrderID: a.RelatedOrderID(),
		Occupancy:      a.Occupancy(),
		Capacity:       a.Capacity(),
		CreatedAt:      a.CreatedAt(),
		ResolvedAt:     a.ResolvedAt(),
	}
}

func historyToRecord(e *history.Entry) history.Record {
	return history.Record{
		ID:         e.ID(),
		EntityType: e.EntityType(),
		EntityID:   e.EntityID(),
		OrderID:    e.OrderID(),
		Action:     e.Action(),
		OldValue:   e.OldValue(),
		NewValue:   e.NewValue(),
		Actor:      e.Actor(),
		At:         e.At(),
	}
}
