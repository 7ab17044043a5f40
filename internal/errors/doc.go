// Package errors provides structured, coded error messages for routify.
//
// Each error carries a unique code (e.g., "E001") mapping to a registered
// template with a short message, a detailed explanation, and a documentation
// URL. Errors wrap underlying causes and cooperate with errors.Is/As.
//
// # Error Categories
//
// Errors are organized into categories:
//   - pattern: path template parsing and matching errors
//   - routing: registration and reconciliation errors
//   - protocol: wire protocol errors (malformed frames, limits)
//   - bridge: WebSocket session errors (handshake, origin)
//   - config: capability resolution errors
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetailf("component %T in group %q", c, group).
//	    WithSuggestion("set a route-path attribute or register type defaults")
package errors
