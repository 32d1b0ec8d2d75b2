// Package orderlog keeps a local history of placed orders so the order
// list and tracking pages work without refetching the backend. It mirrors
// the cart store's persistence posture: one JSON blob, defensive reads.
package orderlog

import (
	"time"

	"github.com/foodhub-app/client-core/internal/cart"
	"github.com/foodhub-app/client-core/pkg/apiclient"
	"github.com/foodhub-app/client-core/pkg/money"
)

// TrackingStatus is the local delivery progression shown on the tracking
// page. It is a client-side simulation, not backend truth.
type TrackingStatus string

const (
	StatusConfirmed TrackingStatus = "CONFIRMED"
	StatusPreparing TrackingStatus = "PREPARING"
	StatusPickedUp  TrackingStatus = "PICKED_UP"
	StatusOnTheWay  TrackingStatus = "ON_THE_WAY"
	StatusDelivered TrackingStatus = "DELIVERED"
)

var statusOrder = []TrackingStatus{
	StatusConfirmed,
	StatusPreparing,
	StatusPickedUp,
	StatusOnTheWay,
	StatusDelivered,
}

// NextStatus returns the step after s. DELIVERED is terminal; unknown
// statuses reset to CONFIRMED.
func NextStatus(s TrackingStatus) TrackingStatus {
	for i, status := range statusOrder {
		if status != s {
			continue
		}
		if i == len(statusOrder)-1 {
			return s
		}
		return statusOrder[i+1]
	}
	return StatusConfirmed
}

// IsValidStatus reports whether s is one of the known tracking steps.
func IsValidStatus(s TrackingStatus) bool {
	for _, status := range statusOrder {
		if status == s {
			return true
		}
	}
	return false
}

// Delivery time estimates in minutes by schedule type.
const (
	etaMinutesNow   = 35
	etaMinutesLater = 55
)

// Order is one locally recorded placement.
type Order struct {
	ID             string               `json:"id"`
	Items          []cart.LineItem      `json:"items"`
	Providers      []cart.VendorSummary `json:"providers"`
	Subtotal       float64              `json:"subtotal"`
	DeliveryFee    float64              `json:"deliveryFee"`
	Discount       float64              `json:"discount"`
	Total          float64              `json:"total"`
	Address        string               `json:"address"`
	PaymentMethod  string               `json:"paymentMethod"`
	ScheduleType   string               `json:"scheduleType"`
	ScheduledAt    string               `json:"scheduledAt,omitempty"`
	Note           string               `json:"note,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	ETAMinutes     int                  `json:"etaMinutes"`
	TrackingStatus TrackingStatus       `json:"trackingStatus"`
}

// Receipt is what the checkout flow hands over for local recording.
type Receipt struct {
	Items         []cart.LineItem
	Address       string
	PaymentMethod string
	ScheduleType  string
	ScheduledAt   string
	Note          string
	Discount      float64
}

// newOrder builds the stored record from a receipt. Pricing is derived
// from the line items the same way the cart displayed it.
func newOrder(id string, r Receipt, createdAt time.Time) Order {
	items := append([]cart.LineItem(nil), r.Items...)

	eta := etaMinutesNow
	if r.ScheduleType == apiclient.ScheduleTypeLater {
		eta = etaMinutesLater
	}

	return Order{
		ID:             id,
		Items:          items,
		Providers:      cart.VendorSummaries(items),
		Subtotal:       cart.Subtotal(items),
		DeliveryFee:    cart.DeliveryFee(items),
		Discount:       money.Round(r.Discount),
		Total:          cart.Total(items, r.Discount),
		Address:        r.Address,
		PaymentMethod:  r.PaymentMethod,
		ScheduleType:   r.ScheduleType,
		ScheduledAt:    r.ScheduledAt,
		Note:           r.Note,
		CreatedAt:      createdAt,
		ETAMinutes:     eta,
		TrackingStatus: StatusConfirmed,
	}
}
