package bindings

import (
	"context"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/mercmobily/routify/pkg/pattern"
	"github.com/mercmobily/routify/pkg/router"
)

// Attribute names recognized on the instance-attribute tier.
const (
	AttrPath     = "route-path"
	AttrGroup    = "routing-group"
	AttrFallback = "fallback"
	AttrDetached = "disable-activation"
)

// AttrSource exposes a component's markup-level attributes. Attribute values
// are strings; AttrPath may hold several whitespace-separated template
// alternatives, and boolean attributes are true when present with an empty
// or truthy value.
type AttrSource interface {
	RouteAttr(name string) (value string, ok bool)
}

// The instance-property tier: a component overrides individual capabilities
// by implementing any of these interfaces.
type (
	// PathTemplater supplies the path template alternatives.
	PathTemplater interface {
		PathTemplates() []string
	}

	// GroupMember names the routing group.
	GroupMember interface {
		RoutingGroup() string
	}

	// FallbackRoute marks the component as its group's fallback.
	FallbackRoute interface {
		RouteFallback() bool
	}

	// DetachedRoute disables activation while keeping lifecycle hooks.
	DetachedRoute interface {
		RouteDetached() bool
	}

	// BeforeActivateHook supplies the pre-activation hook.
	BeforeActivateHook interface {
		BeforeRouteActivate(ctx context.Context, params pattern.Params, ev router.Event) error
	}

	// ActivateHook supplies the activation hook.
	ActivateHook interface {
		OnRouteActivate(ctx context.Context, params pattern.Params, ev router.Event) error
	}
)

// Registry holds type-level default configurations, keyed by the concrete
// component type.
type Registry struct {
	mu       sync.RWMutex
	defaults map[reflect.Type]router.Config
}

// NewRegistry creates an empty type-default registry.
func NewRegistry() *Registry {
	return &Registry{defaults: make(map[reflect.Type]router.Config)}
}

// SetDefaults registers the type-level default configuration for the
// concrete type of the given component value. Later calls for the same type
// replace the earlier defaults.
func (r *Registry) SetDefaults(component any, cfg router.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[reflect.TypeOf(component)] = cfg
}

// Defaults returns the registered type-level defaults for the component's
// concrete type.
func (r *Registry) Defaults(component any) (router.Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.defaults[reflect.TypeOf(component)]
	return cfg, ok
}

// Resolver implements router.Resolver with the three-tier lookup: instance
// attribute first, then instance property, then the type-level default.
// Each capability resolves independently, so a component may take its
// templates from an attribute and its hooks from type defaults.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver backed by the given registry. A nil
// registry resolves tiers 1 and 2 only.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve implements router.Resolver.
func (r *Resolver) Resolve(c router.Routable) (router.Config, error) {
	var cfg router.Config

	// Tier 3: type-level defaults.
	if r.registry != nil {
		if defaults, ok := r.registry.Defaults(c); ok {
			cfg = defaults
		}
	}

	// Tier 2: instance properties.
	if p, ok := c.(PathTemplater); ok {
		cfg.Templates = p.PathTemplates()
	}
	if g, ok := c.(GroupMember); ok {
		cfg.Group = g.RoutingGroup()
	}
	if f, ok := c.(FallbackRoute); ok {
		cfg.Fallback = f.RouteFallback()
	}
	if d, ok := c.(DetachedRoute); ok {
		cfg.Detached = d.RouteDetached()
	}
	if b, ok := c.(BeforeActivateHook); ok {
		cfg.BeforeActivate = b.BeforeRouteActivate
	}
	if a, ok := c.(ActivateHook); ok {
		cfg.Activate = a.OnRouteActivate
	}

	// Tier 1: instance attributes. Hooks cannot be expressed as markup
	// attributes, so only the four value capabilities resolve here.
	if src, ok := c.(AttrSource); ok {
		if v, ok := src.RouteAttr(AttrPath); ok {
			cfg.Templates = strings.Fields(v)
		}
		if v, ok := src.RouteAttr(AttrGroup); ok {
			cfg.Group = v
		}
		if v, ok := src.RouteAttr(AttrFallback); ok {
			cfg.Fallback = boolAttr(v)
		}
		if v, ok := src.RouteAttr(AttrDetached); ok {
			cfg.Detached = boolAttr(v)
		}
	}

	return cfg, nil
}

// boolAttr interprets a boolean attribute value: presence with an empty
// value means true, otherwise the value must parse as a bool.
func boolAttr(v string) bool {
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
