// Package objectstore gates every interaction with the S3-compatible store
// that holds uploaded note assets. The server never proxies file bytes;
// clients upload directly with presigned URLs and the gateway only
// authorizes, verifies, lists, and deletes.
package objectstore

import (
	"context"
	"errors"
	"time"

	"github.com/nvoronin/inkwell/models"
)

// ErrObjectNotFound is returned when the referenced key does not exist in
// the bucket (or exists with zero length, which confirm treats the same).
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the gateway contract the storage service depends on. The
// production implementation is S3-backed; tests use the in-memory fake.
type ObjectStore interface {
	// PresignPut returns a URL authorizing a single PUT of the given key
	// and content type until the TTL elapses.
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)

	// Head returns the stored object's true byte size. The quota debit
	// trusts this value and never the size a client declared.
	Head(ctx context.Context, key string) (int64, error)

	Delete(ctx context.Context, key string) error

	// List returns every object under prefix, keys and sizes only.
	List(ctx context.Context, prefix string) ([]models.StorageObject, error)
}
