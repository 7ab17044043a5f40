// Package bridge exposes the activation engine to a browser thin client
// over a WebSocket. Each connection is a Session with its own Router, since
// each browser tab carries its own location and history; the session decodes
// navigation event frames into interceptor calls and mirrors history pushes
// and activation changes back as patch frames.
package bridge
