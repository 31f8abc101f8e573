// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - OrderPlacement: resolves requested items against menu entries and snapshots them into order lines
//   - OrderLifecycle: applies vendor actions to orders and produces the outbox notifications each
//     transition owes
//
// Services are stateless apart from configuration and never touch storage; the command handlers
// load aggregates, call a service and persist the result in one unit of work.
package services
