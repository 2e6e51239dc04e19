package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	SellerProduct *handler.SellerProductHandler
	Cart          *handler.CartHandler
	Checkout      *handler.CheckoutHandler
	Payment       *handler.PaymentHandler
	Order         *handler.OrderHandler
}

// Start はルートを登録してHTTPサーバーを起動する。
func Start(cfg config.Config, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())

	//フロントからのアクセスを許可
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{cfg.FEURL},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Idempotency-Key"},
		}))
	}

	RegisterRoutes(e, cfg, h)

	return e.Start(":" + cfg.Port)
}
