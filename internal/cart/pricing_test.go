package cart

import (
	"testing"

	"github.com/foodhub-app/client-core/pkg/money"
)

func line(itemID, vendorID string, price float64, qty int, fee float64) LineItem {
	return LineItem{
		ItemID:            itemID,
		VendorID:          vendorID,
		VendorName:        "Vendor " + vendorID,
		VendorDeliveryFee: fee,
		Name:              "Meal " + itemID,
		UnitPrice:         price,
		Quantity:          qty,
	}
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		line("m1", "v1", 10, 2, 60),
		line("m2", "v1", 5, 1, 60),
	}
	if got := Subtotal(items); got != 25 {
		t.Fatalf("Subtotal = %v, want 25", got)
	}
	if got := Subtotal(nil); got != 0 {
		t.Fatalf("Subtotal(nil) = %v, want 0", got)
	}
}

func TestDeliveryFeeOncePerVendor(t *testing.T) {
	t.Parallel()

	singleVendor := []LineItem{
		line("m1", "v1", 10, 1, 60),
		line("m2", "v1", 5, 1, 60),
		line("m3", "v1", 7, 1, 60),
	}
	if got := DeliveryFee(singleVendor); got != 60 {
		t.Fatalf("single vendor fee = %v, want 60 (never 180)", got)
	}

	multiVendor := []LineItem{
		line("m1", "v1", 10, 1, 60),
		line("m2", "v2", 5, 1, 80),
		line("m3", "v1", 7, 2, 60),
	}
	if got := DeliveryFee(multiVendor); got != 140 {
		t.Fatalf("multi vendor fee = %v, want 140", got)
	}
}

func TestDeliveryFeeSamplesFirstOccurrence(t *testing.T) {
	t.Parallel()

	// Second v1 line carries a stale fee; the first occurrence wins.
	items := []LineItem{
		line("m1", "v1", 10, 1, 60),
		line("m2", "v1", 5, 1, 75),
	}
	if got := DeliveryFee(items); got != 60 {
		t.Fatalf("fee = %v, want first-occurrence 60", got)
	}
}

func TestTotalConsistency(t *testing.T) {
	t.Parallel()

	carts := [][]LineItem{
		nil,
		{line("m1", "v1", 10, 2, 60)},
		{line("m1", "v1", 9.99, 3, 60), line("m2", "v2", 0.01, 7, 80)},
		{line("m1", "v1", 2.675, 1, 60)},
	}

	for _, items := range carts {
		want := money.Round(Subtotal(items) + DeliveryFee(items) - 0)
		if got := Total(items, 0); got != want {
			t.Fatalf("Total(%v) = %v, want %v", items, got, want)
		}
	}
}

func TestTotalWithDiscount(t *testing.T) {
	t.Parallel()

	items := []LineItem{line("m1", "v1", 10, 2, 60)}
	if got := Total(items, 15); got != 65 {
		t.Fatalf("Total with discount = %v, want 65", got)
	}
}

func TestSingleVendorCheckoutScenario(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		line("m1", "v1", 10, 2, 60),
		line("m2", "v1", 5, 1, 60),
	}

	if got := Subtotal(items); got != 25 {
		t.Fatalf("subtotal = %v, want 25", got)
	}
	if got := DeliveryFee(items); got != 60 {
		t.Fatalf("delivery fee = %v, want 60", got)
	}
	if got := Total(items, 0); got != 85 {
		t.Fatalf("total = %v, want 85", got)
	}
}
