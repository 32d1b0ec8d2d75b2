// Package addressbook persists the checkout addresses a user chose to
// keep, so the checkout form can offer them back. Same persistence posture
// as the cart: one JSON blob, reads never fail.
package addressbook

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/foodhub-app/client-core/internal/checkout"
	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
	"github.com/foodhub-app/client-core/pkg/ids"
	"github.com/foodhub-app/client-core/pkg/logger"
	"github.com/foodhub-app/client-core/pkg/storage"
)

const idPrefix = "addr"

// SavedAddress is one remembered checkout address.
type SavedAddress struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Address checkout.Address `json:"address"`
	SavedAt time.Time        `json:"savedAt"`
}

// Book manages the saved-address blob.
type Book struct {
	storage storage.Store
	key     string
	logg    *logger.Logger
	now     func() time.Time

	mu sync.Mutex
}

// NewBook builds an address book persisting under the given blob key.
func NewBook(store storage.Store, key string, logg *logger.Logger) (*Book, error) {
	if store == nil {
		return nil, fmt.Errorf("storage required")
	}
	if key == "" {
		return nil, fmt.Errorf("storage key required")
	}
	return &Book{storage: store, key: key, logg: logg, now: time.Now}, nil
}

// List returns the saved addresses, most recently saved first.
func (b *Book) List(ctx context.Context) []SavedAddress {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]SavedAddress(nil), b.readLocked(ctx)...)
}

// Get looks a saved address up by id.
func (b *Book) Get(ctx context.Context, addressID string) (SavedAddress, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, saved := range b.readLocked(ctx) {
		if saved.ID == addressID {
			return saved, true
		}
	}
	return SavedAddress{}, false
}

// Save remembers the address under a fresh id. An identical address
// already in the book is replaced rather than duplicated, keeping its
// place at the head. An empty label falls back to the area, then the
// city, then a generic one.
func (b *Book) Save(ctx context.Context, address checkout.Address, label string) (SavedAddress, error) {
	saved := SavedAddress{
		ID:      ids.New(idPrefix),
		Label:   labelFor(address, label),
		Address: address,
		SavedAt: b.now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	existing := b.readLocked(ctx)
	next := make([]SavedAddress, 0, len(existing)+1)
	next = append(next, saved)
	for _, entry := range existing {
		if entry.Address == address {
			continue
		}
		next = append(next, entry)
	}

	if err := b.persistLocked(ctx, next); err != nil {
		return SavedAddress{}, err
	}
	return saved, nil
}

// Remove forgets a saved address. Removing an unknown id is a no-op.
func (b *Book) Remove(ctx context.Context, addressID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing := b.readLocked(ctx)
	next := make([]SavedAddress, 0, len(existing))
	for _, entry := range existing {
		if entry.ID == addressID {
			continue
		}
		next = append(next, entry)
	}
	if len(next) == len(existing) {
		return nil
	}
	return b.persistLocked(ctx, next)
}

func labelFor(address checkout.Address, label string) string {
	if label = strings.TrimSpace(label); label != "" {
		return label
	}
	if address.Area != "" {
		return address.Area
	}
	if address.City != "" {
		return address.City
	}
	return "Saved address"
}

func (b *Book) readLocked(ctx context.Context) []SavedAddress {
	raw, ok, err := b.storage.Get(ctx, b.key)
	if err != nil {
		if b.logg != nil {
			b.logg.Warn(ctx, fmt.Sprintf("address book unavailable, treating as empty: %v", err))
		}
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var saved []SavedAddress
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		if b.logg != nil {
			b.logg.Debug(ctx, "discarding corrupt address book blob")
		}
		return nil
	}
	return saved
}

func (b *Book) persistLocked(ctx context.Context, saved []SavedAddress) error {
	raw, err := json.Marshal(saved)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding address book")
	}
	if err := b.storage.Set(ctx, b.key, string(raw)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persisting address book")
	}
	return nil
}
