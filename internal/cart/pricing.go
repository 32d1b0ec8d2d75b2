package cart

import "github.com/foodhub-app/client-core/pkg/money"

// Subtotal sums unit price times quantity across all lines, rounded.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return money.Round(sum)
}

// DeliveryFee sums one fee per distinct vendor, sampling the first line
// seen for each vendor. A vendor charges its flat fee once no matter how
// many of its items are in the cart; a multi-vendor cart pays every
// vendor's fee.
func DeliveryFee(items []LineItem) float64 {
	seen := make(map[string]struct{}, len(items))
	var sum float64
	for _, item := range items {
		if _, ok := seen[item.VendorID]; ok {
			continue
		}
		seen[item.VendorID] = struct{}{}
		sum += item.VendorDeliveryFee
	}
	return money.Round(sum)
}

// Total is subtotal plus delivery fee minus discount, rounded in exactly
// that order so the result matches what the pricing breakdown displayed
// line by line. There is no discount engine yet; callers pass 0.
func Total(items []LineItem, discount float64) float64 {
	return money.Round(Subtotal(items) + DeliveryFee(items) - discount)
}
