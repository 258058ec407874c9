package gateway

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"
)

// Gateway creates a payment authorization for an amount and currency.
// Everything past the client secret is the provider's business.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}

type stripeGateway struct {
	client *stripeclient.API
}

func NewStripeGateway(apiKey string) Gateway {
	sc := &stripeclient.API{}
	sc.Init(apiKey, nil)
	return &stripeGateway{client: sc}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
