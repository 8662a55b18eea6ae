package main

import (
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/cache"
	"app/internal/infra/db"
	"app/internal/infra/payment"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .envが無いのはコンテナ実行時なので無視してよい
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Restaurant{},
		&model.Driver{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusEvent{},
	); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	//一覧キャッシュ（REDIS_URL未設定ならキャッシュなしで動く）
	var cacheClient *cache.Client
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(cfg.RedisURL, 10*time.Minute)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, running without listing cache")
			cacheClient = nil
		}
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	restaurantRepo := infraRepo.NewRestaurantGormRepository(gormDB)
	driverRepo := infraRepo.NewDriverGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//決済ゲートウェイ
	paystack := payment.NewPaystackClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, customerRepo, restaurantRepo, driverRepo, validator.NewAuthValidator())
	restaurantUC := usecase.NewRestaurantUsecase(restaurantRepo, cacheClient)
	productUC := usecase.NewProductUsecase(productRepo, restaurantRepo, cacheClient)
	cartUC := usecase.NewCartUsecase(customerRepo, cartRepo, cartItemRepo, productRepo)
	driverUC := usecase.NewDriverUsecase(driverRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, customerRepo, usecase.NewFlatFeePolicy())
	transitionUC := usecase.NewOrderTransitionUsecase(txManager, customerRepo, restaurantRepo, driverRepo)
	paymentUC := usecase.NewPaymentUsecase(orderRepo, orderItemRepo, customerRepo, userRepo, paystack, transitionUC, cfg.PaymentCallbackURL)
	viewUC := usecase.NewOrderViewUsecase(orderRepo, orderItemRepo, productRepo, customerRepo, restaurantRepo, driverRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:            handler.NewAuthHandler(authUC),
		Restaurant:      handler.NewRestaurantHandler(restaurantUC),
		Product:         handler.NewProductHandler(productUC),
		Cart:            handler.NewCartHandler(cartUC, checkoutUC),
		Driver:          handler.NewDriverHandler(driverUC),
		CustomerOrder:   handler.NewCustomerOrderHandler(viewUC, transitionUC, paymentUC),
		RestaurantOrder: handler.NewRestaurantOrderHandler(viewUC, transitionUC),
		DriverOrder:     handler.NewDriverOrderHandler(viewUC, transitionUC),
	}

	e := server.New(cfg, logger, handlers)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := server.Start(e, addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
