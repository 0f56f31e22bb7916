// Package services provides domain services that coordinate several aggregates
// of the production core.
//
// The package includes:
//   - CapacityAllocator: scores active lines and places a work order on the best one
//   - SaturationMonitor: turns a post-assignment occupancy snapshot into alerts
//   - OrderLifecycle: step gating, the last-step cascade and crash repair
package services
