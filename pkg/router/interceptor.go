package router

import (
	"context"
	"net/url"
	"strings"

	"github.com/mercmobily/routify/pkg/pattern"
)

// Interceptor is the navigation-interception surface of an installed
// Router. The host feeds it click and history events; it decides which
// clicks to consume, mutates history through the host, and drives
// reconciliation through the router's queue.
type Interceptor struct {
	router *Router
	host   Host
}

// Install installs the navigation interceptor on the given host. The first
// call runs one full reconciliation pass synchronously, so every
// already-registered component receives an initial activation pass.
//
// Install is idempotent: repeated calls return the same interceptor handle
// and do not run another initial pass (the host argument of later calls is
// ignored).
func (r *Router) Install(h Host) *Interceptor {
	r.mu.Lock()
	if r.interceptor != nil {
		ic := r.interceptor
		r.mu.Unlock()
		return ic
	}
	ic := &Interceptor{router: r, host: h}
	r.interceptor = ic
	r.mu.Unlock()

	ev := Event{Kind: EventInstall, Location: h.Location()}
	r.queue.post(func() error {
		return r.reconcileAll(context.Background(), ev)
	})
	return ic
}

// Uninstall detaches the interceptor so a later Install starts fresh.
// Intended for tests; registered components are kept.
func (r *Router) Uninstall() {
	r.mu.Lock()
	r.interceptor = nil
	r.mu.Unlock()
}

// Interceptor returns the installed interceptor, or nil before Install.
func (r *Router) Interceptor() *Interceptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interceptor
}

// HandleClick handles an in-page click. It returns true when the click was
// consumed, in which case the host must suppress the default navigation.
//
// Clicks are ignored (false) when already handled, made with a non-primary
// button or a modifier key, lacking a link-like ancestor, targeting a new
// browsing context, requesting a download, marked external, lacking a
// concrete destination, pointing at a non-HTTP(S) target, or not same-origin
// with the document.
//
// A consumed click whose destination differs from the current location
// pushes the destination onto the session history, synthesizes the
// history-change notification that programmatic pushes do not raise, and
// triggers a reconciliation pass.
func (ic *Interceptor) HandleClick(ctx context.Context, click Click) bool {
	dest, ok := ic.destination(click)
	if !ok {
		return false
	}
	if dest == ic.host.Location() {
		return true
	}
	if err := ic.host.Push(dest); err != nil {
		ic.router.logger.Error("history push failed",
			"location", dest.String(),
			"error", err)
		return true
	}
	ev := Event{Kind: EventClick, Location: dest}
	ic.router.queue.post(func() error {
		return ic.router.reconcileAll(ctx, ev)
	})
	return true
}

// HandleHistoryPop handles an externally raised history change, e.g.
// back/forward navigation. The host must already report the new location.
func (ic *Interceptor) HandleHistoryPop(ctx context.Context) {
	ev := Event{Kind: EventHistoryPop, Location: ic.host.Location()}
	ic.router.queue.post(func() error {
		return ic.router.reconcileAll(ctx, ev)
	})
}

// NotifyLocationChanged triggers a reconciliation pass against the host's
// current location. Application code that mutates history programmatically
// calls this, since such mutation raises no history-change notification of
// its own. Safe to call from inside lifecycle hooks: the pass is queued, not
// nested.
func (ic *Interceptor) NotifyLocationChanged(ctx context.Context) {
	ev := Event{Kind: EventSynthetic, Location: ic.host.Location()}
	ic.router.queue.post(func() error {
		return ic.router.reconcileAll(ctx, ev)
	})
}

// destination applies the click-filter rules and returns the in-app
// destination of an interceptable click.
func (ic *Interceptor) destination(click Click) (pattern.Location, bool) {
	var none pattern.Location
	if click.DefaultPrevented {
		return none, false
	}
	if click.Button != 0 || click.Ctrl || click.Shift || click.Alt || click.Meta {
		return none, false
	}
	a := click.Anchor
	if a == nil {
		return none, false
	}
	if a.Target != "" || a.Download || a.External {
		return none, false
	}
	if a.Href == "" {
		return none, false
	}
	u, err := url.Parse(a.Href)
	if err != nil {
		return none, false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return none, false
	}
	if scheme+"://"+strings.ToLower(u.Host) != strings.ToLower(ic.host.Origin()) {
		return none, false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return pattern.Location{Path: path, Hash: u.Fragment}, true
}
