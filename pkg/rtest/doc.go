// Package rtest provides test doubles for exercising routing behavior:
// a scripted Host with recorded history pushes and a fluent builder for
// components that log every lifecycle hook call.
package rtest
