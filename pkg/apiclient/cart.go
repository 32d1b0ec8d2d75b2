package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/foodhub-app/client-core/pkg/types"
)

// CartMeal is the meal snapshot the backend embeds in server cart lines.
type CartMeal struct {
	ID       string          `json:"id"`
	Title    string          `json:"title,omitempty"`
	Name     string          `json:"name,omitempty"`
	Price    types.FlexFloat `json:"price"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Provider *CartProvider   `json:"provider,omitempty"`
}

// CartProvider identifies the vendor on a server cart line.
type CartProvider struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ServerCartItem is one line of the server-side cart.
type ServerCartItem struct {
	ID       string   `json:"id"`
	MealID   string   `json:"mealId"`
	Quantity int      `json:"quantity"`
	Meal     CartMeal `json:"meal"`
}

// ServerCart is the backend's cart representation.
type ServerCart struct {
	Items       []ServerCartItem `json:"items"`
	TotalAmount types.FlexFloat  `json:"totalAmount"`
}

// AddCartItemRequest adds one meal to the server cart.
type AddCartItemRequest struct {
	MealID   string `json:"mealId"`
	Quantity int    `json:"quantity"`
}

// GetCart fetches the caller's current server-side cart.
func (c *Client) GetCart(ctx context.Context, token string) (*ServerCart, error) {
	var cart ServerCart
	if err := c.do(ctx, http.MethodGet, "/api/v1/cart", token, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem appends a meal line to the server cart.
func (c *Client) AddCartItem(ctx context.Context, token string, req AddCartItemRequest) (*ServerCartItem, error) {
	var item ServerCartItem
	if err := c.do(ctx, http.MethodPost, "/api/v1/cart", token, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem changes the quantity of an existing server cart line.
func (c *Client) UpdateCartItem(ctx context.Context, token, lineID string, quantity int) (*ServerCartItem, error) {
	payload := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	var item ServerCartItem
	path := fmt.Sprintf("/api/v1/cart/%s", url.PathEscape(lineID))
	if err := c.do(ctx, http.MethodPatch, path, token, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes a server cart line by its line id.
func (c *Client) RemoveCartItem(ctx context.Context, token, lineID string) error {
	path := fmt.Sprintf("/api/v1/cart/%s", url.PathEscape(lineID))
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}
