// Package router implements the matching-and-activation engine of routify.
//
// Routable components register themselves into named routing groups, each
// carrying a resolved configuration: path template alternatives, the group
// name, a fallback flag, an activation-disabled flag, and two lifecycle
// hooks. On every navigation event the engine evaluates each group's
// members, in registration order, against the current location snapshot:
// matching components are flagged active and receive their pre-activation
// and activation hooks, a group's fallback activates exactly when no member
// matched, and activation-disabled components receive hooks on a match but
// never become active.
//
// # Router instances
//
// All state lives on an explicit Router instance; construct one per
// application:
//
//	r := router.New(router.WithLogger(logger))
//	r.Register(navItem)
//	ic := r.Install(host)
//
// Install wires the navigation interceptor to a Host (the browser binding,
// see package bridge, or a test host, see package rtest) and runs the
// initial reconciliation pass synchronously. Repeated Install calls return
// the same interceptor handle.
//
// # Reconcile queue
//
// Reconciliation passes are serialized: a trigger arriving while a pass is
// in flight is queued and drained in arrival order after the pass
// completes, so two rapid navigation events can never interleave their
// partially applied state. Within a pass, members are evaluated strictly in
// registration order and a group's fallback only after all of its members;
// every lifecycle hook is awaited before the engine proceeds.
//
// # Error semantics
//
// A component that can never match (no template, not a fallback, activation
// enabled) is reported through the logger and skipped; so is a duplicate
// registration, which is nevertheless appended again. Hook errors are not
// caught: they abort the remainder of their pass and surface at the trigger
// site.
package router
