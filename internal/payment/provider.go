package payment

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"shopelite/internal/logger"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentmethod"
	"go.uber.org/zap"
)

// TokenProvider turns card details into an opaque payment token.
type TokenProvider interface {
	CreatePaymentToken(ctx context.Context, card CardDetails) (string, error)
}

type createFunc func(params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error)

type stripeProvider struct {
	create createFunc
	now    func() time.Time
}

// NewStripeProvider returns a provider backed by Stripe payment methods.
// An empty key yields a provider that always fails with
// ErrProviderUnavailable.
func NewStripeProvider(secretKey string) TokenProvider {
	if secretKey == "" {
		logger.L().Warn("Stripe secret key is empty; card payments disabled")
		return unavailableProvider{}
	}

	client := paymentmethod.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey}
	return &stripeProvider{create: client.New, now: time.Now}
}

func (p *stripeProvider) CreatePaymentToken(ctx context.Context, card CardDetails) (string, error) {
	if err := ValidateCard(card, p.now()); err != nil {
		return "", err
	}

	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(normalizeNumber(card.Number)),
			ExpMonth: stripe.Int64(int64(card.ExpMonth)),
			ExpYear:  stripe.Int64(int64(card.ExpYear)),
			CVC:      stripe.String(card.CVC),
		},
	}
	params.Context = ctx

	pm, err := p.create(params)
	if err != nil {
		logger.FromCtx(ctx).Error("stripe payment method failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrTokenFailed, err)
	}
	return pm.ID, nil
}

type unavailableProvider struct{}

func (unavailableProvider) CreatePaymentToken(ctx context.Context, card CardDetails) (string, error) {
	return "", ErrProviderUnavailable
}

// ValidateCard checks number shape (Luhn), expiry and CVC before any
// network call.
func ValidateCard(card CardDetails, now time.Time) error {
	number := normalizeNumber(card.Number)
	if len(number) < 12 || len(number) > 19 || !isDigits(number) || !luhn(number) {
		return fmt.Errorf("%w: card number", ErrInvalidCard)
	}
	if card.ExpMonth < 1 || card.ExpMonth > 12 {
		return fmt.Errorf("%w: expiry month", ErrInvalidCard)
	}
	y, m, _ := now.Date()
	if card.ExpYear < y || (card.ExpYear == y && card.ExpMonth < int(m)) {
		return fmt.Errorf("%w: card expired", ErrInvalidCard)
	}
	if l := len(card.CVC); l < 3 || l > 4 || !isDigits(card.CVC) {
		return fmt.Errorf("%w: cvc", ErrInvalidCard)
	}
	return nil
}

func normalizeNumber(n string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, n)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func luhn(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
