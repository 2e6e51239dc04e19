package main

import (
	"log/slog"
	"os"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/payment"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		slog.Error("db connect failed", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderEvent{},
	); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部決済
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager)
	paymentUC := usecase.NewPaymentUsecase(txManager, gateway)
	orderUC := usecase.NewOrderUsecase(txManager)

	//Handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		Product:       handler.NewProductHandler(productUC),
		SellerProduct: handler.NewSellerProductHandler(productUC),
		Cart:          handler.NewCartHandler(cartUC),
		Checkout:      handler.NewCheckoutHandler(checkoutUC),
		Payment:       handler.NewPaymentHandler(paymentUC),
		Order:         handler.NewOrderHandler(orderUC),
	}

	//Server起動
	if err := server.Start(cfg, handlers); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
