package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProvider struct {
	client *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{client: sc}
}

func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, request *CheckoutRequest) (*CheckoutResponse, error) {
	quantity := request.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(request.PriceID),
				Quantity: stripe.Int64(quantity),
			},
		},
		SuccessURL: stripe.String(request.SuccessURL),
		CancelURL:  stripe.String(request.CancelURL),
	}

	if request.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(request.CustomerEmail)
	}
	for key, value := range request.Metadata {
		params.AddMetadata(key, value)
	}

	session, err := s.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
