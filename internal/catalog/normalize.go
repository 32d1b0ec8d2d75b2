package catalog

import (
	"strings"

	"github.com/foodhub-app/client-core/internal/cart"
	"github.com/foodhub-app/client-core/pkg/config"
)

const maxTags = 3

// Normalizer maps raw meals to cart item snapshots, filling pricing
// defaults from configuration.
type Normalizer struct {
	defaultDeliveryFee float64
}

func NewNormalizer(cfg config.CheckoutConfig) *Normalizer {
	return &Normalizer{defaultDeliveryFee: cfg.DefaultDeliveryFee}
}

// Normalize produces the canonical add-to-cart snapshot for a meal.
// Vendor identity falls back from the provider object to the bare
// providerId to the unknown-vendor sentinel; a provider without a
// delivery fee gets the configured default.
func (n *Normalizer) Normalize(meal Meal) cart.ItemSnapshot {
	vendorID := meal.ProviderID
	vendorName := ""
	fee := n.defaultDeliveryFee
	if meal.Provider != nil {
		if meal.Provider.ID != "" {
			vendorID = meal.Provider.ID
		}
		vendorName = meal.Provider.Name
		if meal.Provider.DeliveryFee != nil {
			fee = meal.Provider.DeliveryFee.Float64()
		}
	}
	if vendorID == "" {
		vendorID = cart.UnknownVendorID
	}
	if vendorName == "" {
		vendorName = "Unknown vendor"
	}
	if fee < 0 {
		fee = n.defaultDeliveryFee
	}

	price := meal.Price.Float64()
	if price < 0 {
		price = 0
	}

	return cart.ItemSnapshot{
		ItemID:            meal.ID,
		VendorID:          vendorID,
		VendorName:        vendorName,
		VendorDeliveryFee: fee,
		Name:              meal.DisplayName(),
		UnitPrice:         price,
		ImageURL:          meal.ImageURL,
		Tags:              collectTags(meal),
	}
}

// collectTags gathers descriptive labels from the four differently named
// source fields plus the category, deduplicated in first-seen order and
// capped at three.
func collectTags(meal Meal) []string {
	var out []string
	seen := make(map[string]struct{}, maxTags)

	push := func(values ...string) {
		for _, value := range values {
			if len(out) == maxTags {
				return
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			key := strings.ToLower(value)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, value)
		}
	}

	push(meal.Tags...)
	push(meal.Cuisine...)
	push(meal.Dietary...)
	push(meal.DietaryPreferences...)
	push(meal.Category.Label())
	return out
}
