// Package storage persists small JSON blobs under fixed keys. It is the
// local-storage analogue backing the cart, the order log and the address
// book; callers own serialization and treat values as opaque strings.
package storage

import "context"

// Store is a single-writer blob store. Concurrent writers from separate
// processes race last-write-wins; no locking or versioning is offered.
type Store interface {
	// Get returns the blob at key. The second result is false when the key
	// has never been written or was deleted.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
