package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/foodhub-app/client-core/pkg/types"
)

// Payment methods accepted by the backend.
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodCard   = "CARD"
	PaymentMethodStripe = "STRIPE"
)

// Schedule types accepted by the backend.
const (
	ScheduleTypeNow   = "NOW"
	ScheduleTypeLater = "LATER"
)

// OrderRequest is the outbound order placement payload.
type OrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	Note            string `json:"note,omitempty"`
	PaymentMethod   string `json:"paymentMethod"`
	ScheduleType    string `json:"scheduleType"`
	ScheduledAt     string `json:"scheduledAt,omitempty"`
}

// OrderItem is one line of a placed order as the backend reports it.
type OrderItem struct {
	ID        string          `json:"id,omitempty"`
	MealID    string          `json:"mealId"`
	Quantity  int             `json:"quantity"`
	UnitPrice types.FlexFloat `json:"unitPrice,omitempty"`
	SubTotal  types.FlexFloat `json:"subTotal,omitempty"`
	Meal      *CartMeal       `json:"meal,omitempty"`
}

// Order is a placed order as the backend reports it.
type Order struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	PaymentStatus   string          `json:"paymentStatus,omitempty"`
	ScheduleType    string          `json:"scheduleType,omitempty"`
	ScheduledAt     string          `json:"scheduledAt,omitempty"`
	TotalAmount     types.FlexFloat `json:"totalAmount,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
}

// CreateOrder places an order from the server-side cart.
func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders lists the caller's orders.
func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/my", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderDetails fetches one order by id.
func (c *Client) OrderDetails(ctx context.Context, token, orderID string) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/api/v1/orders/%s", url.PathEscape(orderID))
	if err := c.do(ctx, http.MethodGet, path, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
