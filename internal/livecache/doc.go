// Package livecache keeps client-held catalog collections consistent with
// pushed server state.
//
// Every reconcile step is an idempotent whole-record patch over the cached
// slice - no network calls, no deltas. Missed envelopes self-heal: an update
// for an unknown id inserts it, a duplicate create is a no-op, a delete for a
// missing id is a no-op. The server's persistence layer stays the sole source
// of truth for write ordering; this cache is a read-side convenience.
package livecache
