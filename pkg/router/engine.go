package router

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	errs "github.com/mercmobily/routify/internal/errors"
	"github.com/mercmobily/routify/pkg/pattern"
)

// A component moves between three states: inactive, active, and the
// detoured-match state of an activation-disabled component whose template
// matched. Only reconciliation passes and (re-)registration drive
// transitions; the engine stores the active flag on the component itself and
// keeps no shadow copy.

// EvaluateComponent evaluates one component against the event's location
// snapshot and returns whether it matched.
//
// A component without templates is never matched: if it is neither the
// group's fallback nor activation-disabled this is reported as a non-fatal
// error, and in every case its active flag is left untouched. A detached
// (activation-disabled) component that matches receives its hooks but never
// counts as matched and never becomes the group's active component.
//
// On a match the active flag is toggled first, then the pre-activation and
// activation hooks are awaited in order unless the component already is the
// group's recorded active component, and finally the component is recorded
// as active for its group. Hook errors propagate to the caller and leave the
// active-component record unchanged.
func (r *Router) EvaluateComponent(ctx context.Context, c Routable, ev Event) (bool, error) {
	cfg, err := r.resolver.Resolve(c)
	if err != nil {
		r.logger.Error("capability resolution failed, treating component as non-matching",
			"error", err)
		return false, nil
	}
	r.mu.Lock()
	prev := r.groupLocked(groupName(cfg)).active
	r.mu.Unlock()
	return r.evaluateComponent(ctx, c, cfg, ev, prev)
}

// evaluateComponent is the pass-level evaluation. Hooks are gated on prev,
// the group's recorded active component when the pass started, so a member
// that keeps matching across passes does not re-receive its hooks.
func (r *Router) evaluateComponent(ctx context.Context, c Routable, cfg Config, ev Event, prev Routable) (bool, error) {
	name := groupName(cfg)

	if len(cfg.Templates) == 0 {
		if !cfg.Fallback && !cfg.Detached {
			r.logger.Error("routable component cannot match",
				"group", name,
				"error", errs.New("E001"))
		}
		return false, nil
	}

	params, matched := pattern.MatchAny(cfg.Templates, ev.Location, nil)
	if r.observer != nil {
		r.observer.ComponentEvaluated(matched)
	}

	if cfg.Detached {
		// Hooks still run on a match, but a detached component never
		// becomes active and never counts toward "some member matched".
		if matched {
			if err := r.runHooks(ctx, cfg, params, ev); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	if matched != c.RouteActive() {
		c.SetRouteActive(matched)
		if matched {
			r.componentActivated(c)
		}
	}

	if matched {
		if c != prev {
			if err := r.runHooks(ctx, cfg, params, ev); err != nil {
				return true, err
			}
		}
		r.mu.Lock()
		r.groupLocked(name).active = c
		r.mu.Unlock()
	}
	return matched, nil
}

// ReconcileGroup reconciles one named group against the event's location.
// Unknown groups return an error.
func (r *Router) ReconcileGroup(ctx context.Context, group string, ev Event) error {
	r.mu.Lock()
	g, ok := r.groups[group]
	r.mu.Unlock()
	if !ok {
		return errs.New("E003").WithDetailf("group %q", group)
	}
	return r.reconcileGroup(ctx, g, ev)
}

// reconcileGroup evaluates every member in registration order, then toggles
// the fallback so it is active iff no member matched.
//
// A group with no members is skipped entirely, even when a fallback pointer
// is still configured (a fallback whose member entry was unregistered is
// therefore never activated; behavior kept as observed in the wild).
func (r *Router) reconcileGroup(ctx context.Context, g *routingGroup, ev Event) error {
	r.mu.Lock()
	members := append([]Routable(nil), g.members...)
	fallback := g.fallback
	prev := g.active
	r.mu.Unlock()
	if len(members) == 0 {
		return nil
	}

	anyMatched := false
	for _, m := range members {
		cfg, err := r.resolver.Resolve(m)
		if err != nil {
			r.logger.Error("capability resolution failed, treating component as non-matching",
				"error", err)
			continue
		}
		matched, err := r.evaluateComponent(ctx, m, cfg, ev, prev)
		if err != nil {
			return err
		}
		anyMatched = anyMatched || matched
	}
	if !anyMatched {
		r.mu.Lock()
		g.active = nil
		r.mu.Unlock()
	}

	if fallback == nil {
		return nil
	}
	shouldBeActive := !anyMatched
	if shouldBeActive == fallback.RouteActive() {
		return nil
	}
	fallback.SetRouteActive(shouldBeActive)
	if !shouldBeActive {
		return nil
	}
	r.componentActivated(fallback)
	cfg, err := r.resolver.Resolve(fallback)
	if err != nil {
		r.logger.Error("capability resolution failed for fallback, skipping hooks",
			"group", g.name,
			"error", err)
		return nil
	}
	return r.runHooks(ctx, cfg, pattern.Params{}, ev)
}

// ReconcileAll reconciles every group through the reconcile queue. If a pass
// is already in flight the request is queued and drained in arrival order;
// the call blocks until its own pass completed and returns that pass's
// error. Called from inside a lifecycle hook of the same router it cannot
// block: the pass is queued behind the current one and its error goes to
// the router's log instead of the caller.
func (r *Router) ReconcileAll(ctx context.Context, ev Event) error {
	return r.queue.run(func() error {
		return r.reconcileAll(ctx, ev)
	})
}

// reconcileAll runs one full reconciliation pass: every known group, in
// group-creation order. A hook error aborts the remaining groups of the
// pass.
func (r *Router) reconcileAll(ctx context.Context, ev Event) (err error) {
	start := time.Now()
	if r.observer != nil {
		r.observer.PassStarted(ev.Kind)
		defer func() {
			r.observer.PassCompleted(ev.Kind, time.Since(start), err)
		}()
	}

	r.mu.Lock()
	names := append([]string(nil), r.order...)
	r.mu.Unlock()

	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, "routify.reconcile",
			trace.WithAttributes(
				attribute.String("routify.event", string(ev.Kind)),
				attribute.String("routify.location", ev.Location.String()),
				attribute.Int("routify.groups", len(names)),
			))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}()
	}

	for _, name := range names {
		r.mu.Lock()
		g := r.groups[name]
		r.mu.Unlock()
		if err = r.reconcileGroup(ctx, g, ev); err != nil {
			return err
		}
	}
	return nil
}

// runHooks awaits the pre-activation hook, then the activation hook, in
// that order.
func (r *Router) runHooks(ctx context.Context, cfg Config, params pattern.Params, ev Event) error {
	if cfg.BeforeActivate != nil {
		if err := cfg.BeforeActivate(ctx, params, ev); err != nil {
			if r.observer != nil {
				r.observer.HookFailed()
			}
			return err
		}
	}
	if cfg.Activate != nil {
		if err := cfg.Activate(ctx, params, ev); err != nil {
			if r.observer != nil {
				r.observer.HookFailed()
			}
			return err
		}
	}
	return nil
}
