package pattern

import (
	"testing"
)

func TestValidate(t *testing.T) {
	for _, tpl := range []string{"/main", "/settings#profile", "/docs#*", "/done#"} {
		if err := Validate(tpl); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", tpl, err)
		}
	}
	if err := Validate("/a#b#c"); err == nil {
		t.Error("Validate should reject a template with a second '#'")
	}
}

func TestMatchLiteral(t *testing.T) {
	params, ok := Match("/main", Location{Path: "/main"}, nil)
	if !ok {
		t.Fatal("expected match for /main")
	}
	if len(params) != 0 {
		t.Errorf("params = %v, want empty", params)
	}

	if _, ok := Match("/main", Location{Path: "/other"}, nil); ok {
		t.Error("should not match /other")
	}
}

func TestMatchCapture(t *testing.T) {
	tests := []struct {
		name     string
		template string
		path     string
		wantOK   bool
		wantKey  string
		wantVal  string
	}{
		{"binds value", "/page-one/:id", "/page-one/10", true, "id", "10"},
		{"binds empty value", "/page-one/:id", "/page-one/", true, "id", ""},
		{"first segment capture", "/:section/list", "/books/list", true, "section", "books"},
		{"segment count mismatch", "/page-one/:id", "/page-one/10/extra", false, "", ""},
		{"literal tail mismatch", "/:id/edit", "/10/view", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ok := Match(tt.template, Location{Path: tt.path}, nil)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q, %q) ok = %v, want %v", tt.template, tt.path, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got := params[tt.wantKey]; got != tt.wantVal {
				t.Errorf("params[%q] = %q, want %q", tt.wantKey, got, tt.wantVal)
			}
		})
	}
}

func TestMatchWildcard(t *testing.T) {
	if _, ok := Match("/files/*", Location{Path: "/files/report"}, nil); !ok {
		t.Error("wildcard should match non-empty segment")
	}

	// A '*' against an empty segment fails, unlike ':name' which binds "".
	if _, ok := Match("/files/*", Location{Path: "/files/"}, nil); ok {
		t.Error("wildcard should not match empty segment")
	}
	if params, ok := Match("/files/:name", Location{Path: "/files/"}, nil); !ok || params["name"] != "" {
		t.Errorf("capture of empty segment = (%v, %v), want binding to empty string", params, ok)
	}
}

func TestMatchSegmentCount(t *testing.T) {
	tests := []struct {
		template string
		path     string
	}{
		{"/a", "/a/b"},
		{"/a/b", "/a"},
		{"/:x", "/a/b"},
		{"/*", "/a/b"},
		{"/a/:x/*", "/a/b"},
	}

	for _, tt := range tests {
		if _, ok := Match(tt.template, Location{Path: tt.path}, nil); ok {
			t.Errorf("Match(%q, %q) matched despite segment count mismatch", tt.template, tt.path)
		}
	}
}

func TestMatchHash(t *testing.T) {
	tests := []struct {
		name     string
		template string
		loc      Location
		wantOK   bool
	}{
		{"no constraint ignores hash", "/a", Location{Path: "/a", Hash: "anything"}, true},
		{"no constraint empty hash", "/a", Location{Path: "/a"}, true},
		{"wildcard wants non-empty", "/a#*", Location{Path: "/a", Hash: "foo"}, true},
		{"wildcard rejects empty", "/a#*", Location{Path: "/a"}, false},
		{"bare hash wants empty", "/a#", Location{Path: "/a"}, true},
		{"bare hash rejects non-empty", "/a#", Location{Path: "/a", Hash: "foo"}, false},
		{"exact hash matches", "/a#section", Location{Path: "/a", Hash: "section"}, true},
		{"exact hash rejects other", "/a#section", Location{Path: "/a", Hash: "other"}, false},
		{"hash checked before segments", "/b#x", Location{Path: "/a", Hash: "y"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Match(tt.template, tt.loc, nil)
			if ok != tt.wantOK {
				t.Errorf("Match(%q, %v) = %v, want %v", tt.template, tt.loc, ok, tt.wantOK)
			}
		})
	}
}

func TestMatchValidator(t *testing.T) {
	loc := Location{Path: "/users/10"}

	var seen Params
	params, ok := Match("/users/:id", loc, func(p Params) bool {
		seen = p
		return p["id"] == "10"
	})
	if !ok {
		t.Fatal("validator accepting should not fail the match")
	}
	if params["id"] != "10" {
		t.Errorf("params[id] = %q, want %q", params["id"], "10")
	}
	if seen["id"] != "10" {
		t.Errorf("validator saw %v, want id=10", seen)
	}

	// A rejecting validator fails the whole match and yields no params.
	params, ok = Match("/users/:id", loc, func(p Params) bool { return false })
	if ok {
		t.Error("rejecting validator should fail the match")
	}
	if params != nil {
		t.Errorf("params = %v, want nil", params)
	}
}

func TestMatchAny(t *testing.T) {
	templates := []string{"/a", "/b/:id", "/c"}

	params, ok := MatchAny(templates, Location{Path: "/b/7"}, nil)
	if !ok {
		t.Fatal("expected an alternative to match")
	}
	if params["id"] != "7" {
		t.Errorf("params[id] = %q, want %q", params["id"], "7")
	}

	if _, ok := MatchAny(templates, Location{Path: "/d"}, nil); ok {
		t.Error("no alternative should match /d")
	}

	if _, ok := MatchAny(nil, Location{Path: "/a"}, nil); ok {
		t.Error("empty template list never matches")
	}
}

func TestMatchAnyOrder(t *testing.T) {
	// The first successful alternative wins: /x/:first binds, /x/:second
	// is never consulted.
	params, ok := MatchAny([]string{"/x/:first", "/x/:second"}, Location{Path: "/x/1"}, nil)
	if !ok {
		t.Fatal("expected match")
	}
	if _, found := params["first"]; !found {
		t.Errorf("params = %v, want binding for first alternative", params)
	}
	if _, found := params["second"]; found {
		t.Errorf("params = %v, second alternative should not have been used", params)
	}
}

func TestLocationSegments(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/", 2},
		{"/a", 2},
		{"/a/", 3},
		{"/a/b", 3},
	}

	for _, tt := range tests {
		if got := len((Location{Path: tt.path}).Segments()); got != tt.want {
			t.Errorf("Segments(%q) count = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestLocationString(t *testing.T) {
	if got := (Location{Path: "/a/b", Hash: "frag"}).String(); got != "/a/b#frag" {
		t.Errorf("String() = %q, want %q", got, "/a/b#frag")
	}
	if got := (Location{Path: "/a"}).String(); got != "/a" {
		t.Errorf("String() = %q, want %q", got, "/a")
	}
}
