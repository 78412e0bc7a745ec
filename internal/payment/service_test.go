// AngelaMos | 2026
// service_test.go

package payment

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/sook/internal/core"
)

type fakeIntents struct {
	amount   int64
	currency string
	err      error
}

func (f *fakeIntents) CreateIntent(
	_ context.Context,
	amount int64,
	currency string,
) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.amount = amount
	f.currency = currency
	return "pi_secret_123", nil
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("passes the amount through in euros", func(t *testing.T) {
		intents := &fakeIntents{}
		svc := NewService(intents)

		secret, err := svc.CreatePaymentIntent(context.Background(), 4550)
		require.NoError(t, err)

		assert.Equal(t, "pi_secret_123", secret)
		assert.Equal(t, int64(4550), intents.amount)
		assert.Equal(t, "eur", intents.currency)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		intents := &fakeIntents{}
		svc := NewService(intents)

		_, err := svc.CreatePaymentIntent(context.Background(), 0)
		assert.ErrorIs(t, err, core.ErrInvalidInput)

		_, err = svc.CreatePaymentIntent(context.Background(), -100)
		assert.ErrorIs(t, err, core.ErrInvalidInput)

		assert.Zero(t, intents.amount)
	})

	t.Run("surfaces provider failures", func(t *testing.T) {
		intents := &fakeIntents{
			err: fmt.Errorf("create payment intent: %w", core.ErrUpstream),
		}
		svc := NewService(intents)

		_, err := svc.CreatePaymentIntent(context.Background(), 4550)
		assert.ErrorIs(t, err, core.ErrUpstream)
	})
}
