package router

import (
	"context"

	"github.com/mercmobily/routify/pkg/pattern"
)

// Routable is the single capability the engine reads and writes on a
// component: its active flag. The engine never constructs or destroys
// components.
type Routable interface {
	// RouteActive reports whether the component is currently active.
	RouteActive() bool

	// SetRouteActive sets the component's active flag.
	SetRouteActive(active bool)
}

// Hook is a lifecycle callback invoked when a component transitions into
// relevance. The engine awaits each hook before proceeding to the next
// component; an error aborts the remainder of the reconciliation pass.
type Hook func(ctx context.Context, params pattern.Params, ev Event) error

// Config is the resolved routing configuration of a component. The engine
// consumes only resolved values; how they are resolved (attributes,
// properties, type defaults) is the resolver's concern.
type Config struct {
	// Templates are the path template alternatives, tried in order.
	Templates []string

	// Group names the routing group. Empty means DefaultGroup.
	Group string

	// Fallback marks the component as its group's fallback: it activates
	// when no group member matches the current location.
	Fallback bool

	// Detached disables activation: the component still receives lifecycle
	// hooks when its template matches, but is never marked active and never
	// becomes its group's active component.
	Detached bool

	// BeforeActivate runs first on a transition into relevance.
	BeforeActivate Hook

	// Activate runs after BeforeActivate completed.
	Activate Hook
}

// Resolver resolves a component's routing configuration. Implementations
// live in the host-binding layer (see package bindings); the engine depends
// only on this interface.
type Resolver interface {
	Resolve(c Routable) (Config, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(c Routable) (Config, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(c Routable) (Config, error) {
	return f(c)
}

// Configured is the self-resolving component contract used by the default
// resolver: the component hands over its own resolved configuration.
type Configured interface {
	RouteConfig() Config
}

// EventKind identifies what triggered a reconciliation pass.
type EventKind string

const (
	// EventInstall is the synchronous pass run when the interceptor is
	// installed.
	EventInstall EventKind = "install"

	// EventClick is an intercepted in-page link click.
	EventClick EventKind = "click"

	// EventHistoryPop is an externally raised history change
	// (back/forward navigation).
	EventHistoryPop EventKind = "popstate"

	// EventSynthetic is a notification synthesized by application code
	// after programmatic history mutation.
	EventSynthetic EventKind = "synthetic"

	// EventRegister is the single-component evaluation run when a
	// component (re-)registers on an installed router.
	EventRegister EventKind = "register"
)

// Event describes a navigation event. Location is the read-only snapshot
// every evaluation of the pass works against.
type Event struct {
	Kind     EventKind
	Location pattern.Location
}

// Host is the environment surface the navigation interceptor drives: a
// location source, the document origin, and the history mutation primitive.
type Host interface {
	// Location returns the current location snapshot.
	Location() pattern.Location

	// Origin returns the document origin, e.g. "https://example.com".
	Origin() string

	// Push pushes a new location onto the session history without a full
	// reload. It must not raise a history-change notification; the
	// interceptor synthesizes one itself.
	Push(loc pattern.Location) error
}

// Click describes a primary-button click candidate as raised by the host,
// carrying the modifier-key state and the resolved anchor target.
type Click struct {
	// Button is the mouse button (0 is the primary button).
	Button int

	// Modifier-key state at click time.
	Ctrl, Shift, Alt, Meta bool

	// DefaultPrevented reports that something already handled the event.
	DefaultPrevented bool

	// Anchor is the nearest enclosing link-like ancestor, nil if absent.
	Anchor *Anchor
}

// Anchor is the resolved link target of a click.
type Anchor struct {
	// Href is the destination resolved to an absolute URL. Empty means the
	// anchor has no concrete destination.
	Href string

	// Target is the anchor's browsing-context target attribute. Non-empty
	// means the link opens a new browsing context.
	Target string

	// Download requests a forced download.
	Download bool

	// External marks the link as explicitly external to the app.
	External bool
}

// DefaultGroup is the routing group used by components that do not name one.
const DefaultGroup = "default"
