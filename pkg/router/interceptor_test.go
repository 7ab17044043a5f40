package router

import (
	"context"
	"testing"

	"github.com/mercmobily/routify/pkg/pattern"
)

func demoHost() *testHost {
	return &testHost{
		origin: "https://app.example.com",
		loc:    pattern.Location{Path: "/main"},
	}
}

func TestInstallRunsInitialPass(t *testing.T) {
	r := quietRouter()
	c := newTestComponent("c", Config{Templates: []string{"/main"}})
	r.Register(c)

	ic := r.Install(demoHost())
	if ic == nil {
		t.Fatal("Install returned nil")
	}
	// The initial pass ran synchronously.
	if !c.active {
		t.Error("already-registered component should be activated at install time")
	}
}

func TestInstallIdempotent(t *testing.T) {
	r := quietRouter()
	c := newTestComponent("c", Config{Templates: []string{"/main"}})
	r.Register(c)

	ic1 := r.Install(demoHost())
	ic2 := r.Install(demoHost())
	if ic1 != ic2 {
		t.Error("repeated Install should return the same interceptor handle")
	}
	// One install, one transition, one hook pair.
	if len(c.calls) != 2 {
		t.Errorf("calls = %v, want a single before+activate", c.calls)
	}
}

func TestRegisterOnInstalledRouterEvaluates(t *testing.T) {
	r := quietRouter()
	r.Install(demoHost())

	c := newTestComponent("late", Config{Templates: []string{"/main"}})
	r.Register(c)

	if !c.active {
		t.Error("late registration should be evaluated against the current location")
	}
	if got := r.ActiveComponent(DefaultGroup); got != Routable(c) {
		t.Error("late-registered matching component becomes the active component")
	}
}

func clickOn(href string) Click {
	return Click{Anchor: &Anchor{Href: href}}
}

func TestHandleClickFilters(t *testing.T) {
	tests := []struct {
		name  string
		click Click
		want  bool
	}{
		{"plain same-origin link", clickOn("https://app.example.com/page-about"), true},
		{"already handled", Click{DefaultPrevented: true, Anchor: &Anchor{Href: "https://app.example.com/a"}}, false},
		{"secondary button", Click{Button: 1, Anchor: &Anchor{Href: "https://app.example.com/a"}}, false},
		{"ctrl click", Click{Ctrl: true, Anchor: &Anchor{Href: "https://app.example.com/a"}}, false},
		{"shift click", Click{Shift: true, Anchor: &Anchor{Href: "https://app.example.com/a"}}, false},
		{"alt click", Click{Alt: true, Anchor: &Anchor{Href: "https://app.example.com/a"}}, false},
		{"meta click", Click{Meta: true, Anchor: &Anchor{Href: "https://app.example.com/a"}}, false},
		{"no anchor ancestor", Click{}, false},
		{"new browsing context", Click{Anchor: &Anchor{Href: "https://app.example.com/a", Target: "_blank"}}, false},
		{"forced download", Click{Anchor: &Anchor{Href: "https://app.example.com/a", Download: true}}, false},
		{"marked external", Click{Anchor: &Anchor{Href: "https://app.example.com/a", External: true}}, false},
		{"no destination", Click{Anchor: &Anchor{}}, false},
		{"mail link", clickOn("mailto:hi@example.com"), false},
		{"cross origin", clickOn("https://other.example.com/a"), false},
		{"cross scheme", clickOn("http://app.example.com/a"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := quietRouter()
			ic := r.Install(demoHost())
			if got := ic.HandleClick(context.Background(), tt.click); got != tt.want {
				t.Errorf("HandleClick = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleClickNavigates(t *testing.T) {
	r := quietRouter()
	main := newTestComponent("main", Config{Templates: []string{"/main"}})
	about := newTestComponent("about", Config{Templates: []string{"/page-about"}})
	r.Register(main)
	r.Register(about)

	host := demoHost()
	ic := r.Install(host)
	if !main.active {
		t.Fatal("main should be active after install")
	}

	if !ic.HandleClick(context.Background(), clickOn("https://app.example.com/page-about")) {
		t.Fatal("click should be consumed")
	}

	if len(host.pushes) != 1 || host.pushes[0].Path != "/page-about" {
		t.Errorf("pushes = %v, want one push of /page-about", host.pushes)
	}
	if main.active {
		t.Error("main should deactivate after navigation")
	}
	if !about.active {
		t.Error("about should activate after navigation")
	}
}

func TestHandleClickSameLocationNoPush(t *testing.T) {
	r := quietRouter()
	c := newTestComponent("main", Config{Templates: []string{"/main"}})
	r.Register(c)

	host := demoHost()
	ic := r.Install(host)

	if !ic.HandleClick(context.Background(), clickOn("https://app.example.com/main")) {
		t.Fatal("click should still be consumed")
	}
	if len(host.pushes) != 0 {
		t.Errorf("pushes = %v, want none for an unchanged destination", host.pushes)
	}
	// No second pass, no extra hooks.
	if len(c.calls) != 2 {
		t.Errorf("calls = %v, want the install pass only", c.calls)
	}
}

func TestHandleClickCarriesHash(t *testing.T) {
	r := quietRouter()
	c := newTestComponent("c", Config{Templates: []string{"/settings#profile"}})
	r.Register(c)

	host := demoHost()
	ic := r.Install(host)

	ic.HandleClick(context.Background(), clickOn("https://app.example.com/settings#profile"))
	if !c.active {
		t.Error("hash-constrained component should activate")
	}
	if host.loc.Hash != "profile" {
		t.Errorf("host hash = %q, want %q", host.loc.Hash, "profile")
	}
}

func TestHandleHistoryPop(t *testing.T) {
	r := quietRouter()
	main := newTestComponent("main", Config{Templates: []string{"/main"}})
	back := newTestComponent("back", Config{Templates: []string{"/previous"}})
	r.Register(main)
	r.Register(back)

	host := demoHost()
	ic := r.Install(host)

	// The host reports the popped location before notifying.
	host.loc = pattern.Location{Path: "/previous"}
	ic.HandleHistoryPop(context.Background())

	if main.active {
		t.Error("main should deactivate after popstate")
	}
	if !back.active {
		t.Error("back target should activate after popstate")
	}
}

func TestNotifyLocationChanged(t *testing.T) {
	r := quietRouter()
	c := newTestComponent("c", Config{Templates: []string{"/manual"}})
	r.Register(c)

	host := demoHost()
	ic := r.Install(host)

	// External code mutated history programmatically.
	host.loc = pattern.Location{Path: "/manual"}
	ic.NotifyLocationChanged(context.Background())

	if !c.active {
		t.Error("synthesized notification should drive reconciliation")
	}
}

func TestUninstallAllowsReinstall(t *testing.T) {
	r := quietRouter()
	ic1 := r.Install(demoHost())
	r.Uninstall()
	ic2 := r.Install(demoHost())
	if ic1 == ic2 {
		t.Error("reinstall after Uninstall should produce a fresh interceptor")
	}
}
