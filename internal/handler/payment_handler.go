package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /create-payment-intent と /confirm-payment
type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type CreateIntentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	OrderID int64           `json:"order_id"`
}

type ConfirmPaymentRequest struct {
	OrderID         int64  `json:"order_id"`
	PaymentIntentID string `json:"payment_intent_id"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	create := e.Group("/create-payment-intent")
	create.Use(middleware.AuthJWT(cfg))
	create.POST("", h.createIntent)

	confirm := e.Group("/confirm-payment")
	confirm.Use(middleware.AuthJWT(cfg))
	confirm.POST("", h.confirmPayment)
}

func (h *PaymentHandler) createIntent(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreatePaymentIntent(c.Request().Context(), userID, usecase.CreateIntentInput{
		OrderID: req.OrderID,
		Amount:  req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) confirmPayment(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ConfirmPayment(c.Request().Context(), userID, usecase.ConfirmPaymentInput{
		OrderID:         req.OrderID,
		PaymentIntentID: req.PaymentIntentID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
