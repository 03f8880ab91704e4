// Package errs defines the typed error taxonomy used across the API.
//
// Every failure that should reach a client is expressed as an *HTTPError
// carrying a Kind, an HTTP status, and a human-readable message. Handlers
// and middleware never format error JSON themselves; they return an
// *HTTPError and the global error handler renders it exactly once.
package errs
