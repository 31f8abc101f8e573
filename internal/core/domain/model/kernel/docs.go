// Package kernel provides shared domain primitives used across the menu, order and
// notification models:
//   - UUID: identifier for outbox notifications
//   - Contact: normalized chat destination for customers, agents and the vendor
//   - FormatMoney: price rendering shared by replies and notifications
package kernel
