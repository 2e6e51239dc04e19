package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// StripeGateway は Gateway のStripe実装。
type StripeGateway struct {
	currency string
}

// DI。secretKeyが空だとStripe呼び出しは全部失敗する。
func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{currency: string(stripe.CurrencyUSD)}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, orderID int64, userID int64) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toCents(amount)),
		Currency: stripe.String(g.currency),
	}
	params.Context = ctx
	params.AddMetadata("order_id", strconv.FormatInt(orderID, 10))
	params.AddMetadata("user_id", strconv.FormatInt(userID, 10))

	pi, err := paymentintent.New(params)
	if err != nil {
		slog.Error("stripe create intent failed", "order_id", orderID, "error", err)
		return Intent{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// intentの現在状態をStripeへ確認する。
func (g *StripeGateway) ConfirmIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) && sErr.Type == stripe.ErrorTypeCard {
			return ErrDeclined
		}
		slog.Error("stripe get intent failed", "intent_id", intentID, "error", err)
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return nil
	case stripe.PaymentIntentStatusCanceled, stripe.PaymentIntentStatusRequiresPaymentMethod:
		// 未払いのまま止まっている＝カードが通っていない
		return ErrDeclined
	default:
		return fmt.Errorf("%w: intent status %s", ErrProvider, pi.Status)
	}
}

// numeric(10,2) → cents
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
