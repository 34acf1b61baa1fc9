// Package broadcast implements the server-side fan-out hub using the actor pattern.
//
// The Hub decouples "something changed" from "who needs to know": mutation
// handlers publish committed entities and the Hub writes one envelope frame to
// every live websocket session. Uses single goroutine + command channel (no
// mutexes). Per-connection write goroutines handle slow clients gracefully.
// Delivery is best-effort: there is no retry, no queue, no acknowledgment.
package broadcast
