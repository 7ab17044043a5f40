package rtest

import (
	"context"
	"sync"

	"github.com/mercmobily/routify/pkg/pattern"
	"github.com/mercmobily/routify/pkg/router"
)

// Call records one lifecycle hook invocation.
type Call struct {
	// Hook is "before" or "activate".
	Hook string

	// Params is the parameter mapping the hook received.
	Params pattern.Params

	// Event is the navigation event that drove the pass.
	Event router.Event
}

// Component is a scripted routable component that records its hook calls.
// Build one with NewComponent.
type Component struct {
	id  string
	cfg router.Config

	mu     sync.Mutex
	active bool
	calls  []Call
}

// RouteActive implements router.Routable.
func (c *Component) RouteActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetRouteActive implements router.Routable.
func (c *Component) SetRouteActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
}

// RouteConfig implements router.Configured.
func (c *Component) RouteConfig() router.Config {
	return c.cfg
}

// ID returns the builder-assigned identifier.
func (c *Component) ID() string {
	return c.id
}

// Calls returns the ordered hook invocations recorded so far.
func (c *Component) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

func (c *Component) record(hook string, params pattern.Params, ev router.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Hook: hook, Params: params, Event: ev})
}

// ComponentBuilder allows fluent construction of test components.
type ComponentBuilder struct {
	c              *Component
	beforeActivate router.Hook
	activate       router.Hook
}

// NewComponent creates a component builder.
//
// Example:
//
//	c := rtest.NewComponent("page-one").
//	    WithTemplates("/page-one/:id").
//	    Build()
func NewComponent(id string) *ComponentBuilder {
	return &ComponentBuilder{c: &Component{id: id}}
}

// WithTemplates sets the path template alternatives.
func (b *ComponentBuilder) WithTemplates(templates ...string) *ComponentBuilder {
	b.c.cfg.Templates = templates
	return b
}

// InGroup sets the routing group.
func (b *ComponentBuilder) InGroup(group string) *ComponentBuilder {
	b.c.cfg.Group = group
	return b
}

// AsFallback marks the component as its group's fallback.
func (b *ComponentBuilder) AsFallback() *ComponentBuilder {
	b.c.cfg.Fallback = true
	return b
}

// Detached disables activation while keeping lifecycle hooks.
func (b *ComponentBuilder) Detached() *ComponentBuilder {
	b.c.cfg.Detached = true
	return b
}

// WithBeforeActivate adds a custom pre-activation hook, invoked after the
// call is recorded.
func (b *ComponentBuilder) WithBeforeActivate(hook router.Hook) *ComponentBuilder {
	b.beforeActivate = hook
	return b
}

// WithActivate adds a custom activation hook, invoked after the call is
// recorded.
func (b *ComponentBuilder) WithActivate(hook router.Hook) *ComponentBuilder {
	b.activate = hook
	return b
}

// Build returns the finished component. Its hooks record every invocation
// and then delegate to the custom hooks, if any.
func (b *ComponentBuilder) Build() *Component {
	c := b.c
	before, activate := b.beforeActivate, b.activate
	c.cfg.BeforeActivate = func(ctx context.Context, params pattern.Params, ev router.Event) error {
		c.record("before", params, ev)
		if before != nil {
			return before(ctx, params, ev)
		}
		return nil
	}
	c.cfg.Activate = func(ctx context.Context, params pattern.Params, ev router.Event) error {
		c.record("activate", params, ev)
		if activate != nil {
			return activate(ctx, params, ev)
		}
		return nil
	}
	return c
}

// Host is a scripted router.Host: a settable location and origin, with
// every history push recorded.
type Host struct {
	mu     sync.Mutex
	origin string
	loc    pattern.Location
	pushes []pattern.Location
}

// NewHost creates a host at the given origin and path with an empty hash.
func NewHost(origin, path string) *Host {
	return &Host{origin: origin, loc: pattern.Location{Path: path}}
}

// SetLocation moves the host's location without recording a push, the way
// external history navigation does.
func (h *Host) SetLocation(path, hash string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loc = pattern.Location{Path: path, Hash: hash}
}

// Location implements router.Host.
func (h *Host) Location() pattern.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loc
}

// Origin implements router.Host.
func (h *Host) Origin() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.origin
}

// Push implements router.Host.
func (h *Host) Push(loc pattern.Location) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pushes = append(h.pushes, loc)
	h.loc = loc
	return nil
}

// Pushes returns the recorded history pushes.
func (h *Host) Pushes() []pattern.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]pattern.Location(nil), h.pushes...)
}

// Click builds a plain primary-button click on the given resolved href.
func Click(href string) router.Click {
	return router.Click{Anchor: &router.Anchor{Href: href}}
}
