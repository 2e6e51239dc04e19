package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCOD  PaymentMethod = "cod"
)

// CheckoutUsecase はカートから注文への遷移を1トランザクションで行う。
//
//	入力検証 → 在庫検証（全行） → 在庫減算（条件付きUPDATE） → Order+OrderItems作成
//
// カード決済ではカートを残す（支払い確定まで再試行できる）。
// 代引きは支払い確定扱いにして同じトランザクションでカートを消す。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	validator *InventoryValidator
	assembler *OrderAssembler
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		validator: NewInventoryValidator(),
		assembler: NewOrderAssembler(),
	}
}

type CheckoutInput struct {
	ShippingAddress string
	PaymentMethod   PaymentMethod
	IdempotencyKey  string
}

// 戻り値のcreatedは新規作成ならtrue、idempotencyキーの再送ならfalse。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, bool, error) {
	if userID <= 0 {
		return OrderOutput{}, false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderOutput{}, false, NewHTTPError(http.StatusBadRequest, "shipping address is required")
	}

	method := in.PaymentMethod
	if method == "" {
		method = PaymentMethodCard
	}
	if method != PaymentMethodCard && method != PaymentMethodCOD {
		return OrderOutput{}, false, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	// キーが無ければ生成する（この場合は二重送信を判定できない）
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}
	if len(key) > 255 {
		return OrderOutput{}, false, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput
	created := true

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ注文を返す
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			created = false
			return nil
		}

		//カート取得
		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		// 全行を先に検証。1行でも落ちたら注文は作らない。
		lines, err := u.validator.Validate(ctx, r.Products(), cartItems)
		if err != nil {
			return err
		}

		// 在庫減算。検証済みでも同時注文に先を越された行はここで落ちる。
		// 落ちたらトランザクションごと巻き戻る。
		for _, ln := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ln.Product.ID, ln.Item.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("not enough stock for %s", ln.Product.Name))
			}
		}

		//注文作成（ここが耐久点。支払いが失敗しても注文は残る）
		order, orderItems, err := u.assembler.Assemble(ctx, r, userID, lines, in.ShippingAddress, key)
		if err != nil {
			return err
		}

		if err := r.OrderEvents().Append(ctx, model.OrderEvent{
			OrderID: order.ID,
			Type:    model.OrderEventCreated,
			Detail:  string(method),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 代引きは支払い確定扱い。カートもここで消す。
		if method == PaymentMethodCOD {
			if err := r.Orders().MarkPaid(ctx, order.ID, ""); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.CartItems().ClearByUserID(ctx, userID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.OrderEvents().Append(ctx, model.OrderEvent{
				OrderID: order.ID,
				Type:    model.OrderEventPaymentConfirmed,
				Detail:  "cash on delivery",
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			order.Status = model.OrderStatusPaid
		}

		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, false, err
	}

	if created {
		slog.Info("checkout completed",
			"user_id", userID,
			"order_id", out.ID,
			"total_amount", out.TotalAmount,
			"payment_method", string(method),
		)
	}

	return out, created, nil
}
