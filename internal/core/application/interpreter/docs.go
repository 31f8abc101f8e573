// Package interpreter maps structured chat commands to use cases and turns every outcome
// into exactly one reply for the caller.
//
// The package includes:
//   - Interpreter: capability check, payload validation, dispatch and reply formatting
//   - Authorizer: resolves the capabilities of a caller
//   - Envelope and Result: the transport-neutral request and response
//
// Key rules:
//   - Every command declares one required capability, checked once before dispatch
//   - Unknown commands are answered with the help text, not an error
//   - User-visible errors become reply text; infrastructure errors are logged and
//     answered with a generic message
//   - Notifications are returned to the caller for dispatch, never sent from here
package interpreter
