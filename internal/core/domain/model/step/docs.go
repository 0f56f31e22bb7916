// Package step provides the ProcessStep entity: one stage of the ordered
// pipeline a work order passes through.
//
// Key business rules:
//   - Steps are numbered 1..N per order and move Pending -> InProcess -> Done
//   - Step N > 1 may start only when step N-1 of the same order is Done
//   - Finishing a step records a Completed domain event; the order lifecycle
//     listener decides whether that completes the parent order
//   - Operator assignment and data capture are allowed in every status
package step
