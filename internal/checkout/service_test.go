package checkout

import (
	"context"
	"reflect"
	"testing"

	"github.com/foodhub-app/client-core/internal/cart"
	"github.com/foodhub-app/client-core/pkg/apiclient"
	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
	"github.com/foodhub-app/client-core/pkg/storage"
)

const testToken = "opaque-session-token"

type stubBackend struct {
	serverCart *apiclient.ServerCart
	getErr     error
	removeErr  error
	failAddAt  int // 1-based add call that fails, 0 = never

	removed    []string
	addCalls   []apiclient.AddCartItemRequest
	orderReqs  []apiclient.OrderRequest
	stripeReqs []apiclient.StripeCheckoutRequest

	order      *apiclient.Order
	orderErr   error
	session    *apiclient.StripeCheckoutSession
	sessionErr error
	confirmed  *apiclient.ConfirmedSession
	confirmErr error
}

func (b *stubBackend) GetCart(context.Context, string) (*apiclient.ServerCart, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	if b.serverCart != nil {
		return b.serverCart, nil
	}
	return &apiclient.ServerCart{}, nil
}

func (b *stubBackend) RemoveCartItem(_ context.Context, _ string, lineID string) error {
	if b.removeErr != nil {
		return b.removeErr
	}
	b.removed = append(b.removed, lineID)
	return nil
}

func (b *stubBackend) AddCartItem(_ context.Context, _ string, req apiclient.AddCartItemRequest) (*apiclient.ServerCartItem, error) {
	if b.failAddAt > 0 && len(b.addCalls)+1 == b.failAddAt {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "meal unavailable")
	}
	b.addCalls = append(b.addCalls, req)
	return &apiclient.ServerCartItem{ID: "sl-" + req.MealID, MealID: req.MealID, Quantity: req.Quantity}, nil
}

func (b *stubBackend) CreateOrder(_ context.Context, _ string, req apiclient.OrderRequest) (*apiclient.Order, error) {
	b.orderReqs = append(b.orderReqs, req)
	if b.orderErr != nil {
		return nil, b.orderErr
	}
	if b.order != nil {
		return b.order, nil
	}
	return &apiclient.Order{ID: "srv-order-1", Status: "PENDING"}, nil
}

func (b *stubBackend) CreateStripeCheckoutSession(_ context.Context, _ string, req apiclient.StripeCheckoutRequest) (*apiclient.StripeCheckoutSession, error) {
	b.stripeReqs = append(b.stripeReqs, req)
	if b.sessionErr != nil {
		return nil, b.sessionErr
	}
	if b.session != nil {
		return b.session, nil
	}
	return &apiclient.StripeCheckoutSession{}, nil
}

func (b *stubBackend) ConfirmStripeSession(context.Context, string, string) (*apiclient.ConfirmedSession, error) {
	if b.confirmErr != nil {
		return nil, b.confirmErr
	}
	if b.confirmed != nil {
		return b.confirmed, nil
	}
	return &apiclient.ConfirmedSession{}, nil
}

func newTestService(t *testing.T, backend *stubBackend) (*Service, *cart.Store) {
	t.Helper()

	store, err := cart.NewStore(storage.NewMemory(), "cart", nil)
	if err != nil {
		t.Fatalf("building cart store: %v", err)
	}
	svc, err := NewService(backend, backend, store, nil, nil)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, store
}

func seedCart(t *testing.T, store *cart.Store, items ...cart.ItemSnapshot) {
	t.Helper()
	for _, item := range items {
		if _, err := store.AddItem(context.Background(), item, 1); err != nil {
			t.Fatalf("seeding cart: %v", err)
		}
	}
}

func snapshot(itemID, vendorID string, price float64) cart.ItemSnapshot {
	return cart.ItemSnapshot{
		ItemID:            itemID,
		VendorID:          vendorID,
		VendorName:        "Vendor " + vendorID,
		VendorDeliveryFee: 60,
		Name:              "Meal " + itemID,
		UnitPrice:         price,
	}
}

func TestPlaceOrderCOD(t *testing.T) {
	backend := &stubBackend{
		serverCart: &apiclient.ServerCart{Items: []apiclient.ServerCartItem{
			{ID: "stale-1", MealID: "old"},
		}},
	}
	svc, store := newTestService(t, backend)
	ctx := context.Background()
	seedCart(t, store, snapshot("m1", "v1", 10), snapshot("m2", "v1", 5))

	result, err := svc.PlaceOrder(ctx, testToken, validDraft())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if result.Status != StatusPlaced {
		t.Fatalf("expected PLACED, got %s", result.Status)
	}
	if result.Order == nil || result.Order.ID != "srv-order-1" {
		t.Fatalf("unexpected order %+v", result.Order)
	}

	// The stale server line was removed and both local lines pushed.
	if !reflect.DeepEqual(backend.removed, []string{"stale-1"}) {
		t.Fatalf("unexpected removals %v", backend.removed)
	}
	want := []apiclient.AddCartItemRequest{
		{MealID: "m1", Quantity: 1},
		{MealID: "m2", Quantity: 1},
	}
	if !reflect.DeepEqual(backend.addCalls, want) {
		t.Fatalf("unexpected adds %v", backend.addCalls)
	}

	if len(backend.orderReqs) != 1 {
		t.Fatalf("expected one order request, got %d", len(backend.orderReqs))
	}
	if backend.orderReqs[0].DeliveryAddress != "12 Lake Road, Banani, Dhaka" {
		t.Fatalf("unexpected address %q", backend.orderReqs[0].DeliveryAddress)
	}

	if state := store.ReadState(ctx); !state.IsEmpty() || state.LastAddedVendorID != "" {
		t.Fatalf("cart should be cleared after placement, got %+v", state)
	}
}

func TestPlaceOrderFailureKeepsCart(t *testing.T) {
	backend := &stubBackend{orderErr: pkgerrors.New(pkgerrors.CodeDependency, "orders down")}
	svc, store := newTestService(t, backend)
	ctx := context.Background()
	seedCart(t, store, snapshot("m1", "v1", 10))

	result, err := svc.PlaceOrder(ctx, testToken, validDraft())
	if err == nil {
		t.Fatal("expected placement error")
	}
	if result.Status != StatusFailed {
		t.Fatalf("expected FAILED, got %s", result.Status)
	}
	if state := store.ReadState(ctx); len(state.Items) != 1 {
		t.Fatalf("cart must survive a failed placement, got %+v", state)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, _ := newTestService(t, &stubBackend{})

	result, err := svc.PlaceOrder(context.Background(), testToken, validDraft())
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if result.Status != StatusEditing {
		t.Fatalf("empty cart should never leave EDITING, got %s", result.Status)
	}
}

func TestPlaceOrderMissingToken(t *testing.T) {
	svc, store := newTestService(t, &stubBackend{})
	seedCart(t, store, snapshot("m1", "v1", 10))

	result, err := svc.PlaceOrder(context.Background(), "", validDraft())
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if result.Status != StatusEditing {
		t.Fatalf("unexpected status %s", result.Status)
	}
}

func TestPlaceOrderCardReturnsRedirect(t *testing.T) {
	backend := &stubBackend{
		session: &apiclient.StripeCheckoutSession{CheckoutURL: "https://pay.example/cs_123"},
	}
	svc, store := newTestService(t, backend)
	ctx := context.Background()
	seedCart(t, store, snapshot("m1", "v1", 10))

	draft := validDraft()
	draft.PaymentMethod = apiclient.PaymentMethodCard

	result, err := svc.PlaceOrder(ctx, testToken, draft)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if result.Status != StatusSubmitting {
		t.Fatalf("card hand-off should stay SUBMITTING, got %s", result.Status)
	}
	if result.RedirectURL != "https://pay.example/cs_123" {
		t.Fatalf("unexpected redirect %q", result.RedirectURL)
	}
	if len(backend.orderReqs) != 0 {
		t.Fatal("card payment must not create the order directly")
	}
	if state := store.ReadState(ctx); state.IsEmpty() {
		t.Fatal("cart must not clear before the payment is confirmed")
	}
}

func TestPlaceOrderCardMissingRedirect(t *testing.T) {
	svc, store := newTestService(t, &stubBackend{session: &apiclient.StripeCheckoutSession{SessionID: "cs_123"}})
	seedCart(t, store, snapshot("m1", "v1", 10))

	draft := validDraft()
	draft.PaymentMethod = apiclient.PaymentMethodStripe

	result, err := svc.PlaceOrder(context.Background(), testToken, draft)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if result.Status != StatusFailed {
		t.Fatalf("unexpected status %s", result.Status)
	}
}

func TestConfirmCardPayment(t *testing.T) {
	backend := &stubBackend{
		confirmed: &apiclient.ConfirmedSession{
			Created: true,
			Order: &struct {
				ID string `json:"id,omitempty"`
			}{ID: "srv-order-9"},
		},
	}
	svc, store := newTestService(t, backend)
	ctx := context.Background()
	seedCart(t, store, snapshot("m1", "v1", 10))

	orderID, err := svc.ConfirmCardPayment(ctx, testToken, "cs_123")
	if err != nil {
		t.Fatalf("ConfirmCardPayment: %v", err)
	}
	if orderID != "srv-order-9" {
		t.Fatalf("unexpected order id %q", orderID)
	}
	if state := store.ReadState(ctx); !state.IsEmpty() {
		t.Fatal("cart should clear once the payment is confirmed")
	}
}

func TestConfirmCardPaymentNoOrder(t *testing.T) {
	svc, store := newTestService(t, &stubBackend{confirmed: &apiclient.ConfirmedSession{}})
	ctx := context.Background()
	seedCart(t, store, snapshot("m1", "v1", 10))

	if _, err := svc.ConfirmCardPayment(ctx, testToken, "cs_123"); pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if state := store.ReadState(ctx); state.IsEmpty() {
		t.Fatal("cart must stay intact when no order was produced")
	}
}
