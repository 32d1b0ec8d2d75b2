package apiclient

import (
	"context"
	"net/http"
)

// StripeCheckoutRequest creates a hosted checkout session for card payment.
type StripeCheckoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	Note            string `json:"note,omitempty"`
	ScheduleType    string `json:"scheduleType,omitempty"`
	ScheduledAt     string `json:"scheduledAt,omitempty"`
	SuccessURL      string `json:"successUrl,omitempty"`
	CancelURL       string `json:"cancelUrl,omitempty"`
}

// StripeCheckoutSession is the created session. Which URL field is set
// varies by backend version.
type StripeCheckoutSession struct {
	SessionID   string `json:"sessionId,omitempty"`
	URL         string `json:"url,omitempty"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	SessionURL  string `json:"sessionUrl,omitempty"`
}

// RedirectURL resolves the session's checkout URL across the field
// variants the backend has shipped, or "" when none is present.
func (s *StripeCheckoutSession) RedirectURL() string {
	if s == nil {
		return ""
	}
	switch {
	case s.URL != "":
		return s.URL
	case s.CheckoutURL != "":
		return s.CheckoutURL
	default:
		return s.SessionURL
	}
}

// ConfirmedSession reports whether a Stripe session produced an order.
type ConfirmedSession struct {
	Created bool `json:"created,omitempty"`
	Order   *struct {
		ID string `json:"id,omitempty"`
	} `json:"order,omitempty"`
}

// CreateStripeCheckoutSession asks the backend to open a Stripe checkout
// session for the caller's server-side cart.
func (c *Client) CreateStripeCheckoutSession(ctx context.Context, token string, req StripeCheckoutRequest) (*StripeCheckoutSession, error) {
	var session StripeCheckoutSession
	if err := c.do(ctx, http.MethodPost, "/api/v1/payments/stripe/checkout-session", token, req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ConfirmStripeSession finalizes a returned Stripe session into an order.
func (c *Client) ConfirmStripeSession(ctx context.Context, token, sessionID string) (*ConfirmedSession, error) {
	payload := struct {
		SessionID string `json:"sessionId"`
	}{SessionID: sessionID}

	var confirmed ConfirmedSession
	if err := c.do(ctx, http.MethodPost, "/api/v1/payments/stripe/confirm-session", token, payload, &confirmed); err != nil {
		return nil, err
	}
	return &confirmed, nil
}
