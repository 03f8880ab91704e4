// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// authentication, request logging, CORS, upload handling, panic recovery,
// and the global error handler that renders every failure.
package middleware
