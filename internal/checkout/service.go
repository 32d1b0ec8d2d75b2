package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/foodhub-app/client-core/internal/cart"
	"github.com/foodhub-app/client-core/pkg/apiclient"
	"github.com/foodhub-app/client-core/pkg/auth"
	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
	"github.com/foodhub-app/client-core/pkg/logger"
	"github.com/foodhub-app/client-core/pkg/metrics"
)

type cartAPI interface {
	GetCart(ctx context.Context, token string) (*apiclient.ServerCart, error)
	AddCartItem(ctx context.Context, token string, req apiclient.AddCartItemRequest) (*apiclient.ServerCartItem, error)
	RemoveCartItem(ctx context.Context, token, lineID string) error
}

type orderAPI interface {
	CreateOrder(ctx context.Context, token string, req apiclient.OrderRequest) (*apiclient.Order, error)
	CreateStripeCheckoutSession(ctx context.Context, token string, req apiclient.StripeCheckoutRequest) (*apiclient.StripeCheckoutSession, error)
	ConfirmStripeSession(ctx context.Context, token, sessionID string) (*apiclient.ConfirmedSession, error)
}

type localCart interface {
	ReadState(ctx context.Context) cart.State
	Clear(ctx context.Context) (cart.State, error)
}

// Service runs the checkout flow: draft validation, cart reconciliation
// and order placement against the backend.
type Service struct {
	cartAPI  cartAPI
	orderAPI orderAPI
	local    localCart
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires a checkout service. A nil metrics recorder is fine; it
// degrades to no-ops.
func NewService(cartAPI cartAPI, orderAPI orderAPI, local localCart, m *metrics.CheckoutMetrics, logg *logger.Logger) (*Service, error) {
	if cartAPI == nil || orderAPI == nil {
		return nil, fmt.Errorf("api client required")
	}
	if local == nil {
		return nil, fmt.Errorf("local cart store required")
	}
	return &Service{
		cartAPI:  cartAPI,
		orderAPI: orderAPI,
		local:    local,
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Result is the outcome of a placement attempt. Status is the terminal
// draft status: PLACED for a completed COD order, SUBMITTING for a card
// draft handed off to the external payment page, FAILED when the flow
// broke after leaving EDITING, and EDITING when the draft never left it
// (validation or auth problems).
type Result struct {
	Status      Status
	Order       *apiclient.Order
	RedirectURL string
}

// PlaceOrder drives a draft through SYNCING_CART and SUBMITTING. On COD
// success the local cart is cleared exactly once. On any failure the local
// cart is left intact so the user keeps their draft. Card drafts return
// the external payment redirect URL without clearing; the cart clears when
// the payment is confirmed.
func (s *Service) PlaceOrder(ctx context.Context, token string, draft Draft) (*Result, error) {
	if err := auth.CheckToken(token, s.now()); err != nil {
		return &Result{Status: StatusEditing}, err
	}
	if err := draft.Validate(); err != nil {
		return &Result{Status: StatusEditing}, err
	}

	state := s.local.ReadState(ctx)
	if state.IsEmpty() {
		return &Result{Status: StatusEditing}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := s.SyncLocalCart(ctx, token, state.Items); err != nil {
		s.metrics.IncOrderFailure(draft.PaymentMethod)
		return &Result{Status: StatusFailed}, err
	}

	if draft.IsCardPayment() {
		return s.startCardPayment(ctx, token, draft)
	}
	return s.placeCOD(ctx, token, draft)
}

func (s *Service) placeCOD(ctx context.Context, token string, draft Draft) (*Result, error) {
	order, err := s.orderAPI.CreateOrder(ctx, token, BuildOrderPayload(draft))
	if err != nil {
		s.metrics.IncOrderFailure(draft.PaymentMethod)
		return &Result{Status: StatusFailed}, err
	}

	s.clearCart(ctx)
	s.metrics.IncOrderPlaced(draft.PaymentMethod)
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, order.ID), "order placed")
	}
	return &Result{Status: StatusPlaced, Order: order}, nil
}

func (s *Service) startCardPayment(ctx context.Context, token string, draft Draft) (*Result, error) {
	session, err := s.orderAPI.CreateStripeCheckoutSession(ctx, token, BuildStripePayload(draft))
	if err != nil {
		s.metrics.IncOrderFailure(draft.PaymentMethod)
		return &Result{Status: StatusFailed}, err
	}

	redirect := session.RedirectURL()
	if redirect == "" {
		s.metrics.IncOrderFailure(draft.PaymentMethod)
		return &Result{Status: StatusFailed},
			pkgerrors.New(pkgerrors.CodeDependency, "checkout session has no redirect url")
	}
	return &Result{Status: StatusSubmitting, RedirectURL: redirect}, nil
}

// ConfirmCardPayment finalizes a returned payment session into an order.
// The local cart clears only once the backend confirms an order exists.
func (s *Service) ConfirmCardPayment(ctx context.Context, token, sessionID string) (string, error) {
	if err := auth.CheckToken(token, s.now()); err != nil {
		return "", err
	}
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}

	confirmed, err := s.orderAPI.ConfirmStripeSession(ctx, token, sessionID)
	if err != nil {
		s.metrics.IncOrderFailure(apiclient.PaymentMethodStripe)
		return "", err
	}

	orderID := ""
	if confirmed.Order != nil {
		orderID = confirmed.Order.ID
	}
	if !confirmed.Created && orderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "payment session produced no order")
	}

	s.clearCart(ctx)
	s.metrics.IncOrderPlaced(apiclient.PaymentMethodStripe)
	return orderID, nil
}

// clearCart empties the local cart after a confirmed placement. Failing to
// clear never fails the order; the backend already accepted it.
func (s *Service) clearCart(ctx context.Context) {
	if _, err := s.local.Clear(ctx); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("clearing cart after placement: %v", err))
	}
}
