package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the object store audio is uploaded to before job submission.
type Storage interface {
	// Upload writes data from reader to the named object, replacing it.
	Upload(ctx context.Context, name string, reader io.Reader) error

	// Delete removes the named object. Missing objects are not an error.
	Delete(ctx context.Context, name string) error

	// Exists reports whether the named object exists.
	Exists(ctx context.Context, name string) (bool, error)

	// URL returns the unsigned URL of the named object.
	URL(ctx context.Context, name string) (string, error)
}

// SignedURLProvider is implemented by backends that can issue time-limited
// read-only URLs for private objects.
type SignedURLProvider interface {
	SignedURL(ctx context.Context, name string, ttl time.Duration) (string, error)
}

// ContainerEnsurer is implemented by backends whose container or bucket
// may have to be created before the first upload.
type ContainerEnsurer interface {
	EnsureContainer(ctx context.Context) error
}
