// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/angelamos/sook/internal/core"
)

// IntentCreator creates a payment intent and returns its client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// StripeClient creates payment intents against the Stripe API.
type StripeClient struct {
	api     *client.API
	timeout time.Duration
}

func NewStripeClient(secretKey string, timeout time.Duration) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeClient{api: api, timeout: timeout}
}

func (c *StripeClient) CreateIntent(
	ctx context.Context,
	amount int64,
	currency string,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf(
			"create payment intent: %w: %w",
			core.ErrUpstream,
			err,
		)
	}

	return intent.ClientSecret, nil
}

type Service struct {
	intents IntentCreator
}

func NewService(intents IntentCreator) *Service {
	return &Service{intents: intents}
}

// CreatePaymentIntent starts a card payment for the given amount in
// cents and hands the client secret back for the frontend to confirm.
func (s *Service) CreatePaymentIntent(
	ctx context.Context,
	amountCents int64,
) (string, error) {
	if amountCents <= 0 {
		return "", core.ValidationError("amount must be greater than zero")
	}

	return s.intents.CreateIntent(
		ctx,
		amountCents,
		string(stripe.CurrencyEUR),
	)
}
