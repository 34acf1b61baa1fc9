// Package subscriber implements the client side of the live-update wire.
//
// A Subscriber owns exactly one logical websocket connection and presents a
// topic-keyed subscribe/unsubscribe API that survives connection churn: on
// drop it reconnects with exponential backoff and existing registrations keep
// working against the fresh connection, so callers never carry their own
// reconnection logic. Unsubscribing never closes the connection.
package subscriber
