package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
	"github.com/foodhub-app/client-core/pkg/logger"
	"github.com/foodhub-app/client-core/pkg/storage"
)

// Listener observes committed cart changes. Listeners run synchronously
// after a successful persist, in no particular order.
type Listener func(State)

// Store is the single logical writer of the persisted cart blob. Reads are
// defensive (corrupt or unavailable storage degrades to an empty cart);
// writes are serialized within this process. Writers in other processes
// race last-write-wins on the shared key; no locking is offered because the
// backing stores offer none.
type Store struct {
	storage storage.Store
	key     string
	logg    *logger.Logger

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewStore builds a cart store persisting under the given blob key.
func NewStore(store storage.Store, key string, logg *logger.Logger) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("storage required")
	}
	if key == "" {
		return nil, fmt.Errorf("storage key required")
	}
	return &Store{
		storage:   store,
		key:       key,
		logg:      logg,
		listeners: make(map[int]Listener),
	}, nil
}

// ReadState returns the current cart snapshot. It never fails: an absent,
// corrupted or unreachable blob reads as an empty cart.
func (s *Store) ReadState(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(ctx).Clone()
}

// AddItem adds quantity units of the item. Quantities below 1 coerce to 1.
// An existing line is incremented and its vendor snapshot and tags are
// refreshed; a new item is appended. The item's vendor becomes the
// last-added vendor either way.
func (s *Store) AddItem(ctx context.Context, item ItemSnapshot, quantity int) (State, error) {
	quantity = clampQuantity(quantity)

	return s.mutate(ctx, func(state *State) bool {
		if idx := state.indexOf(item.ItemID); idx >= 0 {
			line := &state.Items[idx]
			line.Quantity += quantity
			line.VendorID = vendorOrUnknown(item.VendorID)
			line.VendorName = item.VendorName
			line.VendorDeliveryFee = item.VendorDeliveryFee
			line.Tags = append([]string(nil), item.Tags...)
		} else {
			state.Items = append(state.Items, LineItem{
				ItemID:            item.ItemID,
				VendorID:          vendorOrUnknown(item.VendorID),
				VendorName:        item.VendorName,
				VendorDeliveryFee: item.VendorDeliveryFee,
				Name:              item.Name,
				UnitPrice:         item.UnitPrice,
				Quantity:          quantity,
				ImageURL:          item.ImageURL,
				Tags:              append([]string(nil), item.Tags...),
			})
		}
		state.LastAddedVendorID = vendorOrUnknown(item.VendorID)
		return true
	})
}

// SetQuantity sets an existing line's quantity, floored at 1. Zero or
// negative input never removes the line; RemoveItem is the only removal.
// Unknown item ids are a no-op.
func (s *Store) SetQuantity(ctx context.Context, itemID string, quantity int) (State, error) {
	quantity = clampQuantity(quantity)

	return s.mutate(ctx, func(state *State) bool {
		idx := state.indexOf(itemID)
		if idx < 0 {
			return false
		}
		if state.Items[idx].Quantity == quantity {
			return false
		}
		state.Items[idx].Quantity = quantity
		return true
	})
}

// Increment raises the line's quantity by one.
func (s *Store) Increment(ctx context.Context, itemID string) (State, error) {
	return s.step(ctx, itemID, +1)
}

// Decrement lowers the line's quantity by one, floored at 1.
func (s *Store) Decrement(ctx context.Context, itemID string) (State, error) {
	return s.step(ctx, itemID, -1)
}

func (s *Store) step(ctx context.Context, itemID string, delta int) (State, error) {
	s.mu.Lock()
	state := s.readLocked(ctx)
	idx := state.indexOf(itemID)
	s.mu.Unlock()
	if idx < 0 {
		return state.Clone(), nil
	}
	return s.SetQuantity(ctx, itemID, state.Items[idx].Quantity+delta)
}

// RemoveItem deletes the line. Removing an id not in the cart changes
// nothing. When the removed line's vendor was the last-added vendor and no
// remaining line shares it, the last-added vendor is recomputed as the
// first remaining line's vendor, or "" for an empty cart.
func (s *Store) RemoveItem(ctx context.Context, itemID string) (State, error) {
	return s.mutate(ctx, func(state *State) bool {
		idx := state.indexOf(itemID)
		if idx < 0 {
			return false
		}
		state.Items = append(state.Items[:idx], state.Items[idx+1:]...)

		if state.LastAddedVendorID != "" && !state.hasVendor(state.LastAddedVendorID) {
			if len(state.Items) > 0 {
				state.LastAddedVendorID = state.Items[0].VendorID
			} else {
				state.LastAddedVendorID = ""
			}
		}
		return true
	})
}

// Clear resets the cart to empty.
func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.mutate(ctx, func(state *State) bool {
		if state.IsEmpty() && state.LastAddedVendorID == "" {
			return false
		}
		*state = emptyState()
		return true
	})
}

// Subscribe registers a listener for committed changes and returns an
// idempotent unsubscribe function.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = listener

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

// mutate applies fn to the current state and persists the result when fn
// reports a change. Listeners fire only after a successful persist; a
// failed persist leaves the stored state untouched and returns it.
func (s *Store) mutate(ctx context.Context, fn func(*State) bool) (State, error) {
	s.mu.Lock()

	state := s.readLocked(ctx)
	next := state.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return state.Clone(), nil
	}

	if err := s.persistLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return state.Clone(), err
	}

	observers := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		observers = append(observers, l)
	}
	s.mu.Unlock()

	for _, l := range observers {
		l(next.Clone())
	}
	return next.Clone(), nil
}

func (s *Store) readLocked(ctx context.Context) State {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("cart storage unavailable, treating as empty: %v", err))
		}
		return emptyState()
	}
	if !ok || raw == "" {
		return emptyState()
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Corrupt or older-shape blob. Recovered silently per contract.
		if s.logg != nil {
			s.logg.Debug(ctx, "discarding corrupt cart blob")
		}
		return emptyState()
	}
	if state.Items == nil {
		state.Items = []LineItem{}
	}
	return state
}

func (s *Store) persistLocked(ctx context.Context, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart state")
	}
	if err := s.storage.Set(ctx, s.key, string(raw)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persisting cart state")
	}
	return nil
}

func clampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

func vendorOrUnknown(vendorID string) string {
	if vendorID == "" {
		return UnknownVendorID
	}
	return vendorID
}
