// Package server wires the HTTP surface: the catalog and rate REST API, the
// anonymous websocket endpoint for live updates, and the observability
// endpoints.
package server
