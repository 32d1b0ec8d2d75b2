// Package client is the composition root: it builds the storage backend,
// API client and domain services from configuration and hands the
// storefront one object to hold.
package client

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/foodhub-app/client-core/internal/addressbook"
	"github.com/foodhub-app/client-core/internal/cart"
	"github.com/foodhub-app/client-core/internal/catalog"
	"github.com/foodhub-app/client-core/internal/checkout"
	"github.com/foodhub-app/client-core/internal/orderlog"
	"github.com/foodhub-app/client-core/pkg/apiclient"
	"github.com/foodhub-app/client-core/pkg/config"
	"github.com/foodhub-app/client-core/pkg/logger"
	"github.com/foodhub-app/client-core/pkg/metrics"
	"github.com/foodhub-app/client-core/pkg/money"
	"github.com/foodhub-app/client-core/pkg/storage"
)

// Options tunes construction beyond what configuration carries. All fields
// are optional.
type Options struct {
	// Logger replaces the logger built from config.
	Logger *logger.Logger
	// Registerer receives the checkout metrics; nil disables them.
	Registerer prometheus.Registerer
	// Store replaces the storage backend selected by config.
	Store storage.Store
}

// Client bundles the storefront's client core.
type Client struct {
	Cart      *cart.Store
	Catalog   *catalog.Normalizer
	Checkout  *checkout.Service
	Orders    *orderlog.Log
	Addresses *addressbook.Book
	API       *apiclient.Client
	Money     *money.Formatter

	logg  *logger.Logger
	store storage.Store
}

// New builds the client core from configuration.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}

	logg := opts.Logger
	if logg == nil {
		logg = logger.New(logger.Options{
			ServiceName: "foodhub-client-core",
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			WarnStack:   cfg.App.LogWarnStack,
		})
	}

	store := opts.Store
	if store == nil {
		var err error
		if store, err = storage.Open(ctx, cfg, logg); err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
	}

	api, err := apiclient.New(cfg.API, logg)
	if err != nil {
		return nil, fmt.Errorf("building api client: %w", err)
	}

	cartStore, err := cart.NewStore(store, cfg.Storage.CartKey, logg)
	if err != nil {
		return nil, fmt.Errorf("building cart store: %w", err)
	}

	checkoutMetrics := metrics.NewCheckoutMetrics(opts.Registerer)
	checkoutSvc, err := checkout.NewService(api, api, cartStore, checkoutMetrics, logg)
	if err != nil {
		return nil, fmt.Errorf("building checkout service: %w", err)
	}

	orders, err := orderlog.NewLog(store, cfg.Storage.OrdersKey, logg)
	if err != nil {
		return nil, fmt.Errorf("building order log: %w", err)
	}

	addresses, err := addressbook.NewBook(store, cfg.Storage.AddressesKey, logg)
	if err != nil {
		return nil, fmt.Errorf("building address book: %w", err)
	}

	formatter, err := money.NewFormatter(cfg.Checkout.Currency, cfg.Checkout.Locale)
	if err != nil {
		return nil, fmt.Errorf("building money formatter: %w", err)
	}

	return &Client{
		Cart:      cartStore,
		Catalog:   catalog.NewNormalizer(cfg.Checkout),
		Checkout:  checkoutSvc,
		Orders:    orders,
		Addresses: addresses,
		API:       api,
		Money:     formatter,
		logg:      logg,
		store:     store,
	}, nil
}

// AddMeal normalizes a raw catalog meal and adds it to the cart.
func (c *Client) AddMeal(ctx context.Context, meal catalog.Meal, quantity int) (cart.State, error) {
	return c.Cart.AddItem(ctx, c.Catalog.Normalize(meal), quantity)
}

// PlaceOrder runs the checkout flow and, on a completed COD placement,
// records the order in the local history.
func (c *Client) PlaceOrder(ctx context.Context, token string, draft checkout.Draft) (*checkout.Result, error) {
	state := c.Cart.ReadState(ctx)

	result, err := c.Checkout.PlaceOrder(ctx, token, draft)
	if err != nil || result.Status != checkout.StatusPlaced {
		return result, err
	}

	payload := checkout.BuildOrderPayload(draft)
	if _, recErr := c.Orders.Record(ctx, orderlog.Receipt{
		Items:         state.Items,
		Address:       payload.DeliveryAddress,
		PaymentMethod: payload.PaymentMethod,
		ScheduleType:  payload.ScheduleType,
		ScheduledAt:   payload.ScheduledAt,
		Note:          payload.Note,
	}); recErr != nil && c.logg != nil {
		c.logg.Warn(ctx, fmt.Sprintf("recording order history: %v", recErr))
	}
	return result, nil
}

// Close releases the underlying storage backend.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	var errs error
	if c.store != nil {
		errs = multierr.Append(errs, c.store.Close())
	}
	return errs
}
