// Package order provides the WorkOrder aggregate: a unit of production work
// that is routed onto a production line and then advanced through a fixed,
// linear lifecycle.
//
// The package includes:
//   - WorkOrder: the aggregate root holding identity, customer data, priority,
//     line assignment and lifecycle timestamps
//   - Status: the linear state machine
//     Pending -> InProcess -> Completed -> Validated -> Delivered
//
// Key business rules:
//   - Status only moves forward one step at a time; Delivered is terminal and
//     advancing it again is a precondition failure, not a no-op
//   - A line may be assigned once, and only while the order is Pending or
//     InProcess (the statuses that count toward a line's occupancy)
//   - startedAt and completedAt are stamped the first time the order enters
//     InProcess and Completed respectively and never overwritten
package order
