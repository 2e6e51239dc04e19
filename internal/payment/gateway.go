package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// カード拒否。リトライしても同じカードでは通らない。
	ErrDeclined = errors.New("payment declined")
	// プロバイダ側の失敗。時間を置けば通る可能性がある。
	ErrProvider = errors.New("payment provider error")
)

// 外部決済のintent
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway は外部決済プロバイダの2コールだけを約束する。
// 金額はdecimalで受け取り、cents換算は実装側で行う。
type Gateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, orderID int64, userID int64) (Intent, error)
	// 成功は nil。拒否は ErrDeclined、それ以外は ErrProvider。
	ConfirmIntent(ctx context.Context, intentID string) error
}
