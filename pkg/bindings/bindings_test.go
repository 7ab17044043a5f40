package bindings

import (
	"context"
	"testing"

	"github.com/mercmobily/routify/pkg/pattern"
	"github.com/mercmobily/routify/pkg/router"
)

// attrComponent resolves everything from markup attributes.
type attrComponent struct {
	attrs  map[string]string
	active bool
}

func (c *attrComponent) RouteActive() bool     { return c.active }
func (c *attrComponent) SetRouteActive(a bool) { c.active = a }
func (c *attrComponent) RouteAttr(name string) (string, bool) {
	v, ok := c.attrs[name]
	return v, ok
}

// propComponent resolves through the capability interfaces.
type propComponent struct {
	active    bool
	templates []string
	group     string
	hookCalls int
}

func (c *propComponent) RouteActive() bool       { return c.active }
func (c *propComponent) SetRouteActive(a bool)   { c.active = a }
func (c *propComponent) PathTemplates() []string { return c.templates }
func (c *propComponent) RoutingGroup() string    { return c.group }
func (c *propComponent) OnRouteActivate(ctx context.Context, p pattern.Params, ev router.Event) error {
	c.hookCalls++
	return nil
}

// bareComponent relies entirely on type-level defaults.
type bareComponent struct {
	active bool
}

func (c *bareComponent) RouteActive() bool     { return c.active }
func (c *bareComponent) SetRouteActive(a bool) { c.active = a }

func TestResolveAttributes(t *testing.T) {
	c := &attrComponent{attrs: map[string]string{
		AttrPath:     "/a /b/:id",
		AttrGroup:    "sidebar",
		AttrFallback: "",
		AttrDetached: "true",
	}}

	cfg, err := NewResolver(nil).Resolve(c)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(cfg.Templates) != 2 || cfg.Templates[0] != "/a" || cfg.Templates[1] != "/b/:id" {
		t.Errorf("Templates = %v, want [/a /b/:id]", cfg.Templates)
	}
	if cfg.Group != "sidebar" {
		t.Errorf("Group = %q, want %q", cfg.Group, "sidebar")
	}
	if !cfg.Fallback {
		t.Error("bare fallback attribute should mean true")
	}
	if !cfg.Detached {
		t.Error("disable-activation=true should set Detached")
	}
}

func TestResolveProperties(t *testing.T) {
	c := &propComponent{templates: []string{"/p/:x"}, group: "main"}

	cfg, err := NewResolver(nil).Resolve(c)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(cfg.Templates) != 1 || cfg.Templates[0] != "/p/:x" {
		t.Errorf("Templates = %v, want [/p/:x]", cfg.Templates)
	}
	if cfg.Group != "main" {
		t.Errorf("Group = %q, want %q", cfg.Group, "main")
	}
	if cfg.Activate == nil {
		t.Fatal("Activate hook should resolve from the property tier")
	}
	if err := cfg.Activate(context.Background(), nil, router.Event{}); err != nil {
		t.Fatalf("hook error: %v", err)
	}
	if c.hookCalls != 1 {
		t.Errorf("hookCalls = %d, want 1", c.hookCalls)
	}
}

func TestResolveTypeDefaults(t *testing.T) {
	registry := NewRegistry()
	registry.SetDefaults(&bareComponent{}, router.Config{
		Templates: []string{"/default"},
		Group:     "typed",
		Fallback:  true,
	})

	cfg, err := NewResolver(registry).Resolve(&bareComponent{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(cfg.Templates) != 1 || cfg.Templates[0] != "/default" {
		t.Errorf("Templates = %v, want [/default]", cfg.Templates)
	}
	if cfg.Group != "typed" || !cfg.Fallback {
		t.Errorf("cfg = %+v, want typed fallback defaults", cfg)
	}
}

// layeredComponent carries all three tiers for the templates capability.
type layeredComponent struct {
	attrComponent
	templates []string
}

func (c *layeredComponent) PathTemplates() []string { return c.templates }

func TestResolveTierPrecedence(t *testing.T) {
	registry := NewRegistry()
	c := &layeredComponent{
		attrComponent: attrComponent{attrs: map[string]string{AttrPath: "/from-attr"}},
		templates:     []string{"/from-prop"},
	}
	registry.SetDefaults(c, router.Config{
		Templates: []string{"/from-type"},
		Group:     "from-type",
	})

	cfg, err := NewResolver(registry).Resolve(c)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(cfg.Templates) != 1 || cfg.Templates[0] != "/from-attr" {
		t.Errorf("Templates = %v, want attribute tier to win", cfg.Templates)
	}
	// Group has no attribute or property override here, so the type
	// default survives.
	if cfg.Group != "from-type" {
		t.Errorf("Group = %q, want type default to apply", cfg.Group)
	}

	// Without the attribute, the property tier wins.
	delete(c.attrs, AttrPath)
	cfg, _ = NewResolver(registry).Resolve(c)
	if len(cfg.Templates) != 1 || cfg.Templates[0] != "/from-prop" {
		t.Errorf("Templates = %v, want property tier to win", cfg.Templates)
	}
}

func TestResolverWithRouter(t *testing.T) {
	registry := NewRegistry()
	registry.SetDefaults(&bareComponent{}, router.Config{Templates: []string{"/home"}})

	r := router.New(router.WithResolver(NewResolver(registry)))
	c := &bareComponent{}
	if err := r.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if err := r.ReconcileAll(context.Background(), router.Event{
		Kind:     router.EventSynthetic,
		Location: pattern.Location{Path: "/home"},
	}); err != nil {
		t.Fatalf("ReconcileAll error: %v", err)
	}
	if !c.active {
		t.Error("type-default-configured component should activate")
	}
}

func TestBoolAttr(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"true", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"junk", false},
	}
	for _, tt := range tests {
		if got := boolAttr(tt.value); got != tt.want {
			t.Errorf("boolAttr(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
