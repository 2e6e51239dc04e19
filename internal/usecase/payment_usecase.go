package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/payment"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// PaymentUsecase は外部決済intentの発行と支払い確定を扱う。
// カートは支払いが確定するまで消さない。拒否されたら注文とカートはそのまま残り、
// ユーザーは同じ注文に対して支払いをやり直せる。
type PaymentUsecase struct {
	tx      repo.TransactionManager
	gateway payment.Gateway
}

func NewPaymentUsecase(tx repo.TransactionManager, gateway payment.Gateway) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, gateway: gateway}
}

type CreateIntentInput struct {
	OrderID int64
	Amount  decimal.Decimal
}

type CreateIntentOutput struct {
	ClientSecret string `json:"client_secret"`
}

func (u *PaymentUsecase) CreatePaymentIntent(ctx context.Context, userID int64, in CreateIntentInput) (CreateIntentOutput, error) {
	if userID <= 0 {
		return CreateIntentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return CreateIntentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return CreateIntentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if o.Status == model.OrderStatusPaid {
			return NewHTTPError(http.StatusConflict, "order already paid")
		}
		// 金額はサーバー側の注文合計が正。クライアント値とずれていたら拒否。
		if !o.TotalAmount.Equal(in.Amount) {
			return NewHTTPError(http.StatusBadRequest, "amount mismatch")
		}

		order = o
		return nil
	})
	if err != nil {
		return CreateIntentOutput{}, err
	}

	intent, err := u.gateway.CreateIntent(ctx, order.TotalAmount, order.ID, userID)
	if err != nil {
		// プロバイダ失敗。注文はprocessingのまま残っているのでやり直せる。
		return CreateIntentOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider error")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().SetPaymentIntent(ctx, order.ID, intent.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return CreateIntentOutput{}, err
	}

	return CreateIntentOutput{ClientSecret: intent.ClientSecret}, nil
}

type ConfirmPaymentInput struct {
	OrderID         int64
	PaymentIntentID string
}

// ConfirmPayment は支払い結果を注文へ反映する。
// 代引きはチェックアウト時に確定済みなので、ここに来るのはカード注文だけ。
// intentは必ず外部プロバイダへ確認し、確定した場合だけカートを消す。
func (u *PaymentUsecase) ConfirmPayment(ctx context.Context, userID int64, in ConfirmPaymentInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}
	intentID := strings.TrimSpace(in.PaymentIntentID)
	if intentID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment_intent_id is required")
	}

	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		order = o
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	// 二重確定は成功として返す
	if order.Status == model.OrderStatusPaid {
		return u.loadOutput(ctx, order.ID)
	}

	// クライアント申告のintentは信用しない。
	// サーバーがCreatePaymentIntentで保存したintentと一致する場合だけ確認する。
	if order.PaymentIntent == "" || intentID != order.PaymentIntent {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment intent mismatch")
	}

	if err := u.gateway.ConfirmIntent(ctx, intentID); err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			// 拒否。注文もカートもそのまま（別の支払い方法でやり直せる）。
			u.appendEvent(ctx, order.ID, model.OrderEventPaymentDeclined, intentID)
			return OrderOutput{}, NewHTTPError(http.StatusPaymentRequired, "payment declined")
		}
		return OrderOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider error")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().MarkPaid(ctx, order.ID, intentID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.CartItems().ClearByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderEvents().Append(ctx, model.OrderEvent{
			OrderID: order.ID,
			Type:    model.OrderEventPaymentConfirmed,
			Detail:  intentID,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	slog.Info("payment confirmed", "user_id", userID, "order_id", order.ID)

	return u.loadOutput(ctx, order.ID)
}

func (u *PaymentUsecase) loadOutput(ctx context.Context, orderID int64) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// イベント追記に失敗しても呼び出し元の結果は変えない（ログだけ残す）
func (u *PaymentUsecase) appendEvent(ctx context.Context, orderID int64, t model.OrderEventType, detail string) {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.OrderEvents().Append(ctx, model.OrderEvent{
			OrderID: orderID,
			Type:    t,
			Detail:  detail,
		})
	})
	if err != nil {
		slog.Error("append order event failed", "order_id", orderID, "type", string(t), "error", err)
	}
}
