package server

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Handlersはルート登録に必要なハンドラ一式
type Handlers struct {
	Auth            *handler.AuthHandler
	Restaurant      *handler.RestaurantHandler
	Product         *handler.ProductHandler
	Cart            *handler.CartHandler
	Driver          *handler.DriverHandler
	CustomerOrder   *handler.CustomerOrderHandler
	RestaurantOrder *handler.RestaurantOrderHandler
	DriverOrder     *handler.DriverOrderHandler
}

// New はechoを組み立てて全ルートを登録する。
func New(cfg config.Config, logger zerolog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(logger))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg)
	h.Restaurant.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Driver.RegisterRoutes(e, cfg)
	h.CustomerOrder.RegisterRoutes(e, cfg)
	h.RestaurantOrder.RegisterRoutes(e, cfg)
	h.DriverOrder.RegisterRoutes(e, cfg)

	return e
}

// zerologでリクエストログを出す
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			ev := logger.Info()
			if v.Status >= 500 {
				ev = logger.Error().Err(v.Error)
			}
			ev.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// Start はサーバを起動する。
func Start(e *echo.Echo, addr string) error {
	e.Server.ReadHeaderTimeout = 10 * time.Second
	return e.Start(addr)
}
