package pattern

import (
	"strings"

	errs "github.com/mercmobily/routify/internal/errors"
)

// Params holds the parameter bindings produced by a successful match.
type Params map[string]string

// Validator inspects the bound parameters of an otherwise successful match.
// Returning false fails the match even though every segment matched.
type Validator func(Params) bool

// Location is a read-only snapshot of the browser location: an absolute
// path plus the hash fragment (without the leading '#').
type Location struct {
	Path string
	Hash string
}

// Segments splits the path on '/' preserving empty segments, so that a
// trailing slash yields a final empty segment a ':name' capture can bind.
func (l Location) Segments() []string {
	return strings.Split(l.Path, "/")
}

// String returns the location in URL form.
func (l Location) String() string {
	if l.Hash == "" {
		return l.Path
	}
	return l.Path + "#" + l.Hash
}

// Match evaluates a single path template against a location.
//
// Template syntax:
//   - literal segments must equal the location's segment exactly
//   - ':name' always matches and binds name to the segment value,
//     including an empty value
//   - '*' matches any non-empty segment; an empty segment fails the
//     whole match (this asymmetry with ':name' is intentional)
//
// A template may end in a hash constraint:
//   - no '#' at all: the location hash is unconstrained
//   - '#*': the location hash must be non-empty
//   - a bare trailing '#': the location hash must be empty
//   - '#value': the location hash must equal value exactly
//
// Segment counts must be equal for the match to succeed. If a validator is
// supplied it is called with the bound parameters; a false return fails the
// match and no parameters are produced.
func Match(template string, loc Location, v Validator) (Params, bool) {
	tplPath := template
	if idx := strings.IndexByte(template, '#'); idx >= 0 {
		tplPath = template[:idx]
		if !matchHash(template[idx+1:], loc.Hash) {
			return nil, false
		}
	}

	tsegs := strings.Split(tplPath, "/")
	lsegs := loc.Segments()
	if len(tsegs) != len(lsegs) {
		return nil, false
	}

	params := Params{}
	for i, tseg := range tsegs {
		lseg := lsegs[i]
		switch {
		case strings.HasPrefix(tseg, ":"):
			params[tseg[1:]] = lseg
		case tseg == "*":
			if lseg == "" {
				return nil, false
			}
		default:
			if tseg != lseg {
				return nil, false
			}
		}
	}

	if v != nil && !v(params) {
		return nil, false
	}
	return params, true
}

// Validate checks a template's shape: at most one '#', so the hash
// constraint is always the template's tail. Match itself does not validate;
// callers registering templates should.
func Validate(template string) error {
	if i := strings.IndexByte(template, '#'); i >= 0 {
		if strings.IndexByte(template[i+1:], '#') >= 0 {
			return errs.New("E101").WithDetailf("template %q", template)
		}
	}
	return nil
}

// MatchAny tries each template alternative in order and returns the result
// of the first that matches. With no templates it never matches.
func MatchAny(templates []string, loc Location, v Validator) (Params, bool) {
	for _, t := range templates {
		if params, ok := Match(t, loc, v); ok {
			return params, true
		}
	}
	return nil, false
}

// matchHash applies the template's hash constraint. The constraint is the
// text after the template's '#': empty means the location hash must be
// empty, '*' means it must be non-empty, anything else must match exactly.
func matchHash(constraint, hash string) bool {
	switch constraint {
	case "":
		return hash == ""
	case "*":
		return hash != ""
	default:
		return hash == constraint
	}
}
