package router

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	errs "github.com/mercmobily/routify/internal/errors"
	"github.com/mercmobily/routify/pkg/pattern"
)

// Router owns the routing groups, the activation engine, and the navigation
// interceptor for one application. Construct one per application and pass it
// by reference; there is no process-wide state.
type Router struct {
	mu          sync.Mutex
	groups      map[string]*routingGroup
	order       []string
	interceptor *Interceptor

	resolver Resolver
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer

	queue reconcileQueue

	activateMu  sync.Mutex
	activateFns []func(Routable)
}

// routingGroup holds the ordered member list, the fallback pointer, and the
// currently active component of one named group. Members are back-references
// only; the group does not own the components.
type routingGroup struct {
	name     string
	members  []Routable
	fallback Routable
	active   Routable
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithResolver sets the capability resolver. The default resolver requires
// components to implement the Configured interface.
func WithResolver(resolver Resolver) Option {
	return func(r *Router) {
		r.resolver = resolver
	}
}

// WithObserver sets the instrumentation observer (see package metrics).
func WithObserver(o Observer) Option {
	return func(r *Router) {
		r.observer = o
	}
}

// WithTracer enables OpenTelemetry spans around reconciliation passes.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = tracer
	}
}

// New creates a Router.
func New(opts ...Option) *Router {
	r := &Router{
		groups:   make(map[string]*routingGroup),
		resolver: ResolverFunc(defaultResolve),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.queue.onError = func(err error) {
		r.logger.Error("reconciliation pass failed",
			"error", errs.FromError(err, "E004"))
	}
	return r
}

// defaultResolve resolves components that carry their own configuration.
func defaultResolve(c Routable) (Config, error) {
	if cc, ok := c.(Configured); ok {
		return cc.RouteConfig(), nil
	}
	return Config{}, errs.Newf(errs.CategoryConfig,
		"component %T implements neither router.Configured nor a custom resolver contract", c)
}

// Register appends the component to its group's member list, creating the
// group on first reference. A component declaring itself as fallback becomes
// the group's fallback if the group has none yet. Resolved templates are
// validated; a malformed hash constraint rejects the registration.
//
// Registering the same instance a second time logs a warning but still
// appends it again; registration is not deduplicated. On an installed router
// the new component is evaluated against the current location through the
// reconcile queue.
func (r *Router) Register(c Routable) error {
	cfg, err := r.resolver.Resolve(c)
	if err != nil {
		return err
	}
	for _, tpl := range cfg.Templates {
		if err := pattern.Validate(tpl); err != nil {
			return err
		}
	}
	name := groupName(cfg)

	r.mu.Lock()
	g := r.groupLocked(name)
	for _, m := range g.members {
		if m == c {
			r.logger.Warn("component registered twice",
				"group", name,
				"error", errs.New("E002"))
			break
		}
	}
	g.members = append(g.members, c)
	if cfg.Fallback && g.fallback == nil {
		g.fallback = c
	}
	ic := r.interceptor
	r.mu.Unlock()

	if r.observer != nil {
		r.observer.RegistrationChanged(1)
	}

	if ic != nil {
		ev := Event{Kind: EventRegister, Location: ic.host.Location()}
		r.queue.post(func() error {
			_, err := r.EvaluateComponent(context.Background(), c, ev)
			return err
		})
	}
	return nil
}

// Unregister removes the component from its group's member list. Only the
// first occurrence is removed, so a double-registered component stays listed
// once. Unregistering an unknown component is a no-op. The group's fallback
// pointer is left untouched.
func (r *Router) Unregister(c Routable) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		g := r.groups[name]
		for i, m := range g.members {
			if m == c {
				g.members = append(g.members[:i], g.members[i+1:]...)
				if g.active == c {
					g.active = nil
				}
				if r.observer != nil {
					r.observer.RegistrationChanged(-1)
				}
				return
			}
		}
	}
}

// Groups returns the known group names in creation order.
func (r *Router) Groups() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Members returns the group's member list in registration order, or nil for
// an unknown group.
func (r *Router) Members(group string) []Routable {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[group]
	if !ok {
		return nil
	}
	return append([]Routable(nil), g.members...)
}

// Fallback returns the group's fallback component, if any.
func (r *Router) Fallback(group string) Routable {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.groups[group]; ok {
		return g.fallback
	}
	return nil
}

// ActiveComponent returns the group's recorded active component, if any.
func (r *Router) ActiveComponent(group string) Routable {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.groups[group]; ok {
		return g.active
	}
	return nil
}

// OnActivate subscribes an observer to activation notifications: fn is
// called whenever a component transitions into the active state, with a
// reference to the activated component.
func (r *Router) OnActivate(fn func(Routable)) {
	r.activateMu.Lock()
	defer r.activateMu.Unlock()
	r.activateFns = append(r.activateFns, fn)
}

// groupLocked returns the named group, creating it lazily. Caller holds mu.
func (r *Router) groupLocked(name string) *routingGroup {
	if g, ok := r.groups[name]; ok {
		return g
	}
	g := &routingGroup{name: name}
	r.groups[name] = g
	r.order = append(r.order, name)
	return g
}

// componentActivated emits the externally observable activation
// notification for a component transitioning into the active state.
func (r *Router) componentActivated(c Routable) {
	if r.observer != nil {
		r.observer.ComponentActivated()
	}
	r.activateMu.Lock()
	fns := append([]func(Routable){}, r.activateFns...)
	r.activateMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

func groupName(cfg Config) string {
	if cfg.Group == "" {
		return DefaultGroup
	}
	return cfg.Group
}

// Observer receives engine instrumentation callbacks. All methods must be
// cheap and non-blocking; the engine calls them inline.
type Observer interface {
	// PassStarted is called when a reconciliation pass begins.
	PassStarted(kind EventKind)

	// PassCompleted is called when a reconciliation pass finishes.
	PassCompleted(kind EventKind, elapsed time.Duration, err error)

	// ComponentEvaluated is called per pattern-match evaluation.
	ComponentEvaluated(matched bool)

	// ComponentActivated is called on a transition into the active state.
	ComponentActivated()

	// HookFailed is called when a lifecycle hook returns an error.
	HookFailed()

	// RegistrationChanged is called with +1 on register and -1 on
	// unregister.
	RegistrationChanged(delta int)
}
