// Package app is the application layer. It orchestrates repositories and the
// broadcast publisher behind the use cases the HTTP handlers expose.
package app
