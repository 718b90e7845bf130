// Package server hosts masked-field sessions over WebSocket.
//
// Each WebSocket connection owns one session engine. The client opens a
// field from a profile or a raw mask, then sends commands; every request is
// answered with the engine output. Requests on one connection are handled
// in order, so an engine is never used concurrently.
//
// # Endpoints
//
//   - /ws: the session endpoint (path configurable)
//   - /version: build information as JSON
//   - /profiles: the available profile names as JSON
//
// # Messages
//
// Requests and responses are JSON text frames:
//
//	{"id": 1, "op": "open", "profile": "time"}
//	{"id": 2, "op": "command", "command": {"kind": "type", "text": "1"}}
//	{"id": 3, "op": "command", "command": {"kind": "increment", "amount": 1, "symbolic": true}}
//	{"id": 4, "op": "tokens"}
//
// Responses echo the id and op, and carry either the engine output or an
// error string.
//
// # Discovery
//
// With Advertise set, the server announces itself over mDNS for the
// lifetime of Run, see package discovery.
//
// # Profile Reload
//
// With WatchPath set, the profiles file is watched and reloaded after each
// save. New sessions open from the reloaded profiles; a file that fails to
// load leaves the previous ones in place.
//
// # Graceful Shutdown
//
// Run returns when its context is cancelled: the listener is closed,
// open WebSocket connections are closed, and in-flight handlers are
// awaited for up to ShutdownTimeout.
package server
