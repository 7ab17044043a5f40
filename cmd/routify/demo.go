package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/mercmobily/routify/pkg/bindings"
	"github.com/mercmobily/routify/pkg/bridge"
	"github.com/mercmobily/routify/pkg/metrics"
	"github.com/mercmobily/routify/pkg/pattern"
	"github.com/mercmobily/routify/pkg/router"
)

// demoRoutes is the route table served by the demo application.
var demoRoutes = []struct {
	ID       string
	Path     string
	Fallback bool
}{
	{ID: "main", Path: "/main"},
	{ID: "page-one", Path: "/page-one/:id"},
	{ID: "page-about", Path: "/page-about"},
	{ID: "not-found", Fallback: true},
}

// demoPage is a routable demo component configured through the attribute
// tier, the way a markup-declared component would be.
type demoPage struct {
	id     string
	attrs  map[string]string
	logger *slog.Logger
	active bool
}

func newDemoPage(id string, attrs map[string]string, logger *slog.Logger) *demoPage {
	return &demoPage{id: id, attrs: attrs, logger: logger}
}

func (p *demoPage) RouteActive() bool { return p.active }

func (p *demoPage) SetRouteActive(active bool) { p.active = active }

// RouteAttr implements bindings.AttrSource.
func (p *demoPage) RouteAttr(name string) (string, bool) {
	v, ok := p.attrs[name]
	return v, ok
}

// RouteID implements bridge.Identified.
func (p *demoPage) RouteID() string { return p.id }

// OnRouteActivate implements bindings.ActivateHook.
func (p *demoPage) OnRouteActivate(ctx context.Context, params pattern.Params, ev router.Event) error {
	p.logger.Info("page activated",
		"page", p.id,
		"params", map[string]string(params),
		"trigger", string(ev.Kind))
	return nil
}

// demoFactory builds the per-session demo router: every session gets fresh
// component instances since active flags are per-tab state.
func demoFactory(logger *slog.Logger, obs *metrics.Metrics) bridge.RouterFactory {
	return func(host router.Host) *router.Router {
		r := router.New(
			router.WithLogger(logger),
			router.WithResolver(bindings.NewResolver(bindings.NewRegistry())),
			router.WithObserver(obs),
			router.WithTracer(otel.Tracer("routify")),
		)
		for _, rt := range demoRoutes {
			attrs := map[string]string{}
			if rt.Path != "" {
				attrs[bindings.AttrPath] = rt.Path
			}
			if rt.Fallback {
				attrs[bindings.AttrFallback] = ""
			}
			r.Register(newDemoPage(rt.ID, attrs, logger))
		}
		return r
	}
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the demo application's routes",
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			fmt.Println()
			for _, rt := range demoRoutes {
				if rt.Fallback {
					fmt.Printf("  %-12s (fallback)\n", rt.ID)
					continue
				}
				fmt.Printf("  %-12s %s\n", rt.ID, rt.Path)
			}
			fmt.Println()
		},
	}
}
