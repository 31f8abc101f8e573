// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding line snapshots, customer details and lifecycle state
//   - Line: an immutable copy of a menu entry taken when the order was placed
//   - Status and Action: the transition table driving vendor decisions
//
// Key business rules:
//   - Orders start Pending and follow Pending -> Accepted -> Assigned -> Delivered,
//     or Pending -> Rejected
//   - Rejected and Delivered are final
//   - A delivery agent is present exactly when the order is Assigned or Delivered
//   - Line prices never change after the order is placed
package order
