package http

import (
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
)

type AllocateOrderRequest struct {
	OrderID        string  `json:"orderId"`
	Priority       *int    `json:"priority"`
	MaterialType   string  `json:"materialType"`
	EstimatedHours float64 `json:"estimatedHours"`
}

type CreateOrderRequest struct {
	ExternalRef string `json:"externalRef"`
	Customer    string `json:"customer"`
	Priority    int    `json:"priority"`
}

type CreateLineRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type ChangeLineStatusRequest struct {
	Status string `json:"status"`
}

// AssignOperatorRequest clears the assignment when OperatorID is null or absent.
type AssignOperatorRequest struct {
	OperatorID *string `json:"operatorId"`
}

type RecordStepDataRequest struct {
	Data      map[string]any `json:"data"`
	PhotoURLs []string       `json:"photoUrls"`
}

type Created struct {
	ID string `json:"id"`
}

type AssignedLine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Occupancy int     `json:"occupancy"`
	Capacity  int     `json:"capacity"`
	Score     float64 `json:"score"`
}

type LineOccupancy struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Occupancy     int     `json:"occupancy"`
	Capacity      int     `json:"capacity"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// RaisedAlert is the short alert form returned with an allocation.
type RaisedAlert struct {
	ID        string  `json:"id"`
	Severity  string  `json:"severity"`
	LineName  string  `json:"lineName"`
	Occupancy int     `json:"occupancy"`
	Capacity  int     `json:"capacity"`
	Rate      float64 `json:"rate"`
}

type AllocationResponse struct {
	Success      bool            `json:"success"`
	AssignedLine AssignedLine    `json:"assignedLine"`
	AllLines     []LineOccupancy `json:"allLines"`
	Alerts       []RaisedAlert   `json:"alerts"`
}

type OrderTransition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Order is a work order as persisted after a command.
type Order struct {
	ID             string     `json:"id"`
	ExternalRef    string     `json:"externalRef"`
	Customer       string     `json:"customer"`
	Priority       int        `json:"priority"`
	Status         string     `json:"status"`
	LineID         *string    `json:"lineId"`
	MaterialType   string     `json:"materialType"`
	EstimatedHours float64    `json:"estimatedHours"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	StartedAt      *time.Time `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
}

type OrderAdvanceResponse struct {
	Order      Order           `json:"order"`
	Transition OrderTransition `json:"transition"`
}

// StepAdvanceResponse carries Order only when the step completed its order.
type StepAdvanceResponse struct {
	Step    Step              `json:"step"`
	From    string            `json:"from"`
	To      string            `json:"to"`
	Order   *Order            `json:"order,omitempty"`
	Cascade []OrderTransition `json:"orderTransitions"`
	Closed  bool              `json:"orderCompleted"`
}

type LineBoardEntry struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	Capacity      int     `json:"capacity"`
	Occupancy     int     `json:"occupancy"`
	OccupancyRate float64 `json:"occupancyRate"`
}

type HistoryEntry struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"`
	OldValue   *string   `json:"oldValue"`
	NewValue   *string   `json:"newValue"`
	Actor      string    `json:"actor"`
	At         time.Time `json:"at"`
}

type Step struct {
	ID          string         `json:"id"`
	Number      int            `json:"number"`
	Name        string         `json:"name"`
	Status      string         `json:"status"`
	Operator    *string        `json:"operator"`
	Data        map[string]any `json:"data"`
	Photos      []string       `json:"photoUrls"`
	StartedAt   *time.Time     `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt"`
}

type Alert struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Severity       string    `json:"severity"`
	Message        string    `json:"message"`
	LineID         *string   `json:"lineId"`
	LineName       string    `json:"lineName"`
	RelatedOrderID *string   `json:"relatedOrderId"`
	Occupancy      int       `json:"occupancy"`
	Capacity       int       `json:"capacity"`
	Rate           float64   `json:"rate"`
	CreatedAt      time.Time `json:"createdAt"`
}

func lineOccupancies(lines []commands.LineOccupancy) []LineOccupancy {
	out := make([]LineOccupancy, len(lines))
	for i, l := range lines {
		out[i] = LineOccupancy{
			ID:            l.ID.String(),
			Name:          l.Name,
			Occupancy:     l.Occupancy,
			Capacity:      l.Capacity,
			OccupancyRate: l.Rate,
		}
	}
	return out
}

func raisedAlerts(alerts []*alert.Alert) []RaisedAlert {
	out := make([]RaisedAlert, len(alerts))
	for i, a := range alerts {
		out[i] = RaisedAlert{
			ID:        a.ID().String(),
			Severity:  a.Severity().String(),
			LineName:  a.LineName(),
			Occupancy: a.Occupancy(),
			Capacity:  a.Capacity(),
			Rate:      a.Rate(),
		}
	}
	return out
}

func allocationResponse(res commands.AllocateOrderResult) AllocationResponse {
	return AllocationResponse{
		Success: true,
		AssignedLine: AssignedLine{
			ID:        res.AssignedLine.ID.String(),
			Name:      res.AssignedLine.Name,
			Occupancy: res.AssignedLine.Occupancy,
			Capacity:  res.AssignedLine.Capacity,
			Score:     res.AssignedLine.Score,
		},
		AllLines: lineOccupancies(res.AllLines),
		Alerts:   raisedAlerts(res.Alerts),
	}
}

func orderDTO(o *order.WorkOrder) Order {
	return Order{
		ID:             o.ID().String(),
		ExternalRef:    o.ExternalRef(),
		Customer:       o.Customer(),
		Priority:       o.Priority(),
		Status:         o.Status().String(),
		LineID:         idString(o.LineID()),
		MaterialType:   o.MaterialType(),
		EstimatedHours: o.EstimatedHours(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		StartedAt:      o.StartedAt(),
		CompletedAt:    o.CompletedAt(),
	}
}

func stepDTO(s *step.ProcessStep) Step {
	return Step{
		ID:          s.ID().String(),
		Number:      s.Number(),
		Name:        s.Name(),
		Status:      s.Status().String(),
		Operator:    s.Operator(),
		Data:        s.Data(),
		Photos:      s.Photos(),
		StartedAt:   s.StartedAt(),
		CompletedAt: s.CompletedAt(),
	}
}

func orderAdvanceResponse(res commands.AdvanceOrderStatusResult) OrderAdvanceResponse {
	return OrderAdvanceResponse{
		Order:      orderDTO(res.Order),
		Transition: OrderTransition{From: res.Transition.From.String(), To: res.Transition.To.String()},
	}
}

func stepAdvanceResponse(res commands.AdvanceStepResult) StepAdvanceResponse {
	transitions := make([]OrderTransition, len(res.Order))
	for i, tr := range res.Order {
		transitions[i] = OrderTransition{From: tr.From.String(), To: tr.To.String()}
	}
	out := StepAdvanceResponse{
		Step:    stepDTO(res.UpdatedStep),
		From:    res.Step.From.String(),
		To:      res.Step.To.String(),
		Cascade: transitions,
		Closed:  len(res.Order) > 0,
	}
	if res.UpdatedOrder != nil {
		o := orderDTO(res.UpdatedOrder)
		out.Order = &o
	}
	return out
}

func lineBoard(lines []queries.LineOccupancyResponse) []LineBoardEntry {
	out := make([]LineBoardEntry, len(lines))
	for i, l := range lines {
		out[i] = LineBoardEntry{
			ID:            l.ID.String(),
			Name:          l.Name,
			Status:        l.Status,
			Capacity:      l.Capacity,
			Occupancy:     l.Occupancy,
			OccupancyRate: l.OccupancyRate,
		}
	}
	return out
}

func historyEntries(entries []queries.HistoryEntryResponse) []HistoryEntry {
	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{
			ID:         e.ID.String(),
			EntityType: e.EntityType,
			EntityID:   e.EntityID.String(),
			Action:     e.Action,
			OldValue:   e.OldValue,
			NewValue:   e.NewValue,
			Actor:      e.Actor,
			At:         e.At,
		}
	}
	return out
}

func steps(items []queries.StepResponse) []Step {
	out := make([]Step, len(items))
	for i, s := range items {
		out[i] = Step{
			ID:          s.ID.String(),
			Number:      s.Number,
			Name:        s.Name,
			Status:      s.Status,
			Operator:    s.Operator,
			Data:        s.Data,
			Photos:      s.Photos,
			StartedAt:   s.StartedAt,
			CompletedAt: s.CompletedAt,
		}
	}
	return out
}

func alerts(items []queries.AlertResponse) []Alert {
	out := make([]Alert, len(items))
	for i, a := range items {
		out[i] = Alert{
			ID:             a.ID.String(),
			Type:           a.Type,
			Severity:       a.Severity,
			Message:        a.Message,
			LineID:         idString(a.LineID),
			LineName:       a.LineName,
			RelatedOrderID: idString(a.RelatedOrderID),
			Occupancy:      a.Occupancy,
			Capacity:       a.Capacity,
			Rate:           a.Rate,
			CreatedAt:      a.CreatedAt,
		}
	}
	return out
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
