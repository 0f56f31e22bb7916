// Package line provides the ProductionLine aggregate: a finite-capacity
// resource that hosts concurrently active work orders.
//
// Key business rules:
//   - A line has a unique name and a capacity greater than 0
//   - Status is one of Active, Paused or Fault and is changed by administrators
//   - Occupancy is never stored on the line; it is derived by counting the
//     orders that reference the line and are still pending or in process
//   - Only Active lines take part in allocation
package line
