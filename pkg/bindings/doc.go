// Package bindings resolves routing capabilities for attribute-driven
// components.
//
// The engine in package router consumes only resolved configuration values;
// how a component expresses them is this package's concern. Each capability
// (path templates, routing group, fallback flag, activation-disabled flag,
// and the two lifecycle hooks) resolves through a three-tier lookup, highest
// priority first:
//
//  1. instance attribute — the component exposes markup-level string
//     attributes through the AttrSource interface ("route-path",
//     "routing-group", "fallback", "disable-activation")
//  2. instance property — the component implements one of the capability
//     interfaces (PathTemplater, GroupMember, FallbackRoute, DetachedRoute,
//     BeforeActivateHook, ActivateHook)
//  3. type-level default — a router.Config registered on a Registry for the
//     component's concrete type
//
// Hooks are functions and have no attribute form; they resolve through
// tiers 2 and 3 only.
//
// # Usage
//
//	registry := bindings.NewRegistry()
//	registry.SetDefaults(&NavItem{}, router.Config{Group: "nav"})
//
//	r := router.New(router.WithResolver(bindings.NewResolver(registry)))
package bindings
