// Package database provides the PostgreSQL persistence layer: pool setup,
// embedded schema migrations and the repository implementations for rates,
// products and collections.
package database
