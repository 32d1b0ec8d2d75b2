// Package checkout assembles the transient order draft, reconciles the
// local cart with the server-side cart and drives order placement. Nothing
// here persists the draft; it lives only for the duration of the flow.
package checkout

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/foodhub-app/client-core/pkg/apiclient"
	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
)

// Status tracks an order draft through the checkout flow.
type Status string

const (
	StatusEditing     Status = "EDITING"
	StatusSyncingCart Status = "SYNCING_CART"
	StatusSubmitting  Status = "SUBMITTING"
	StatusPlaced      Status = "PLACED"
	StatusFailed      Status = "FAILED"
)

// Address is the delivery destination entered at checkout.
type Address struct {
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Street string `json:"street" validate:"required"`
	Area   string `json:"area" validate:"required"`
	City   string `json:"city" validate:"required"`
}

// Line renders the address the way the order endpoint expects it.
func (a Address) Line() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{a.Street, a.Area, a.City} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// Schedule says when the order should be delivered. At is only meaningful
// for LATER schedules.
type Schedule struct {
	Type string    `json:"type" validate:"required,oneof=NOW LATER"`
	At   time.Time `json:"at,omitempty"`
}

// Draft is the in-progress, not-yet-submitted order: the address, schedule
// and payment choices layered over the current cart snapshot. SuccessURL
// and CancelURL only apply to card payments handed off to Stripe.
type Draft struct {
	Address       Address  `json:"address" validate:"required"`
	Schedule      Schedule `json:"schedule" validate:"required"`
	PaymentMethod string   `json:"paymentMethod" validate:"required,oneof=COD CARD STRIPE"`
	Note          string   `json:"note,omitempty"`
	SuccessURL    string   `json:"successUrl,omitempty"`
	CancelURL     string   `json:"cancelUrl,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the draft is submittable. Field problems come back as a
// single validation error carrying the offending field names.
func (d Draft) Validate() error {
	if err := validate.Struct(d); err != nil {
		var fields []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order draft").WithDetails(fields)
	}
	if d.Schedule.Type == apiclient.ScheduleTypeLater && d.Schedule.At.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "scheduled time required for later delivery")
	}
	return nil
}

// IsCardPayment reports whether the draft pays through an external card
// session rather than cash on delivery.
func (d Draft) IsCardPayment() bool {
	return d.PaymentMethod == apiclient.PaymentMethodCard ||
		d.PaymentMethod == apiclient.PaymentMethodStripe
}

// BuildOrderPayload maps the draft onto the outbound order request. The
// note is trimmed and dropped entirely when empty; LATER schedules carry
// the time as RFC3339 in UTC.
func BuildOrderPayload(d Draft) apiclient.OrderRequest {
	req := apiclient.OrderRequest{
		DeliveryAddress: d.Address.Line(),
		Note:            strings.TrimSpace(d.Note),
		PaymentMethod:   d.PaymentMethod,
		ScheduleType:    d.Schedule.Type,
	}
	if d.Schedule.Type == apiclient.ScheduleTypeLater && !d.Schedule.At.IsZero() {
		req.ScheduledAt = d.Schedule.At.UTC().Format(time.RFC3339)
	}
	return req
}

// BuildStripePayload maps the draft onto the checkout-session request for
// card payments. Address, note and schedule follow the same rules as the
// order payload.
func BuildStripePayload(d Draft) apiclient.StripeCheckoutRequest {
	order := BuildOrderPayload(d)
	return apiclient.StripeCheckoutRequest{
		DeliveryAddress: order.DeliveryAddress,
		Note:            order.Note,
		ScheduleType:    order.ScheduleType,
		ScheduledAt:     order.ScheduledAt,
		SuccessURL:      d.SuccessURL,
		CancelURL:       d.CancelURL,
	}
}
