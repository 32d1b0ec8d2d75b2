package orderlog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
	"github.com/foodhub-app/client-core/pkg/ids"
	"github.com/foodhub-app/client-core/pkg/logger"
	"github.com/foodhub-app/client-core/pkg/storage"
)

const idPrefix = "ord"

// Log persists the order history under a single blob key. Reads never
// fail; a corrupt or unreachable blob reads as an empty history.
type Log struct {
	storage storage.Store
	key     string
	logg    *logger.Logger
	now     func() time.Time

	mu sync.Mutex
}

// NewLog builds an order log persisting under the given blob key.
func NewLog(store storage.Store, key string, logg *logger.Logger) (*Log, error) {
	if store == nil {
		return nil, fmt.Errorf("storage required")
	}
	if key == "" {
		return nil, fmt.Errorf("storage key required")
	}
	return &Log{storage: store, key: key, logg: logg, now: time.Now}, nil
}

// Record builds an order from the receipt, assigns it a fresh id and saves
// it at the head of the history.
func (l *Log) Record(ctx context.Context, r Receipt) (Order, error) {
	order := newOrder(ids.New(idPrefix), r, l.now())
	if err := l.Save(ctx, order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// Save puts the order at the head of the history, replacing any earlier
// entry with the same id. Newest first.
func (l *Log) Save(ctx context.Context, order Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing := l.readLocked(ctx)
	next := make([]Order, 0, len(existing)+1)
	next = append(next, order)
	for _, o := range existing {
		if o.ID == order.ID {
			continue
		}
		next = append(next, o)
	}
	return l.persistLocked(ctx, next)
}

// List returns the recorded orders, newest first.
func (l *Log) List(ctx context.Context) []Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Order(nil), l.readLocked(ctx)...)
}

// Get looks an order up by id.
func (l *Log) Get(ctx context.Context, orderID string) (Order, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, o := range l.readLocked(ctx) {
		if o.ID == orderID {
			return o, true
		}
	}
	return Order{}, false
}

// UpdateStatus moves an order to the given tracking step.
func (l *Log) UpdateStatus(ctx context.Context, orderID string, status TrackingStatus) (Order, error) {
	if !IsValidStatus(status) {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown tracking status %q", status))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	orders := l.readLocked(ctx)
	for i, o := range orders {
		if o.ID != orderID {
			continue
		}
		orders[i].TrackingStatus = status
		if err := l.persistLocked(ctx, orders); err != nil {
			return Order{}, err
		}
		return orders[i], nil
	}
	return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

// AdvanceStatus moves an order one tracking step forward. Advancing a
// delivered order is a no-op.
func (l *Log) AdvanceStatus(ctx context.Context, orderID string) (Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	orders := l.readLocked(ctx)
	for i, o := range orders {
		if o.ID != orderID {
			continue
		}
		next := NextStatus(o.TrackingStatus)
		if next == o.TrackingStatus {
			return o, nil
		}
		orders[i].TrackingStatus = next
		if err := l.persistLocked(ctx, orders); err != nil {
			return Order{}, err
		}
		return orders[i], nil
	}
	return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (l *Log) readLocked(ctx context.Context) []Order {
	raw, ok, err := l.storage.Get(ctx, l.key)
	if err != nil {
		if l.logg != nil {
			l.logg.Warn(ctx, fmt.Sprintf("order history unavailable, treating as empty: %v", err))
		}
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var orders []Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		if l.logg != nil {
			l.logg.Debug(ctx, "discarding corrupt order history blob")
		}
		return nil
	}
	return orders
}

func (l *Log) persistLocked(ctx context.Context, orders []Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding order history")
	}
	if err := l.storage.Set(ctx, l.key, string(raw)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persisting order history")
	}
	return nil
}
