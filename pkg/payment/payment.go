package payment

import "context"

// CheckoutProvider redirects a passenger to an externally hosted payment
// page. The application never touches card data; it hands off a price
// identifier and receives a URL to send the user to.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, request *CheckoutRequest) (*CheckoutResponse, error)
}

type CheckoutRequest struct {
	PriceID       string            `json:"price_id"`
	Quantity      int64             `json:"quantity"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}
