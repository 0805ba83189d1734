// Package component defines the lifecycle contract shared by the service's
// infrastructure pieces (object storage, redis, the HTTP server) and the
// registry that starts them in order and stops them in reverse.
package component
