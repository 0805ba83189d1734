// Package server provides the speechkit HTTP server: a Gin engine behind
// an h2c handler, wrapped in the standard middleware stack.
//
// Middleware (server/middleware) runs around the whole handler: recovery,
// request id, CORS, rate limiting, body size limits and request logging.
// Endpoints (server/endpoint) provide /health, /ready and /version.
//
// The server is a component.Component; register it last so it starts
// after the infrastructure it serves.
package server
