// Package pattern implements path template matching for routify.
//
// A path template describes which browser locations a routable component
// should activate for. Templates are plain strings built from literal
// segments, ':name' capture segments, and '*' wildcard segments, optionally
// suffixed with a hash constraint:
//
//	/main                  literal path, any hash
//	/users/:id             captures id, any hash
//	/files/*               any non-empty segment in the second position
//	/settings#profile      hash must be exactly "profile"
//	/settings#*            hash must be non-empty
//	/settings#             hash must be empty
//
// Matching is a pure function of the template, the location snapshot, and an
// optional validator; it holds no state and is safe for concurrent use.
//
// # Usage
//
//	loc := pattern.Location{Path: "/users/10"}
//	params, ok := pattern.Match("/users/:id", loc, nil)
//	// ok == true, params["id"] == "10"
package pattern
