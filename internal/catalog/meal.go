// Package catalog normalizes the backend's loosely shaped meal payloads
// into the canonical snapshot the cart consumes. All fallback chains for
// alternate field names live here, not in the consumers.
package catalog

import "github.com/foodhub-app/client-core/pkg/types"

// Provider is the selling entity attached to a meal.
type Provider struct {
	ID          string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	DeliveryFee *types.FlexFloat `json:"deliveryFee,omitempty"`
}

// Meal is the raw inbound meal shape. Several fields arrive under
// alternate names or shapes depending on the endpoint and backend
// version; decode tolerantly and normalize once.
type Meal struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name,omitempty"`
	Title              string           `json:"title,omitempty"`
	Description        string           `json:"description,omitempty"`
	Cuisine            types.StringList `json:"cuisine,omitempty"`
	Dietary            types.StringList `json:"dietary,omitempty"`
	DietaryPreferences []string         `json:"dietaryPreferences,omitempty"`
	Tags               []string         `json:"tags,omitempty"`
	Price              types.FlexFloat  `json:"price"`
	ImageURL           string           `json:"imageUrl,omitempty"`
	Category           types.Category   `json:"category,omitempty"`
	ProviderID         string           `json:"providerId,omitempty"`
	Provider           *Provider        `json:"provider,omitempty"`
}

// DisplayName resolves the meal's label across the name/title variants.
func (m Meal) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Title != "" {
		return m.Title
	}
	return "Meal"
}
