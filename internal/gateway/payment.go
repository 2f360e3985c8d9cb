package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrAmountOutOfRange     = errors.New("amount exceeds the largest payable value")
)

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// PaymentGateway creates intents for amounts already expressed in the
// smallest currency unit.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}

// ToMinorUnits converts a major-unit amount (e.g. dollars) to an integer
// count of minor units, rounding half away from zero.
func ToMinorUnits(amount float64) (int64, error) {
	minor := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return 0, ErrAmountOutOfRange
	}
	return minor.IntPart(), nil
}

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	if secretKey == "" {
		return &StripeGateway{}
	}
	return &StripeGateway{api: client.New(secretKey, nil)}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	if g.api == nil {
		return "", ErrGatewayNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}
