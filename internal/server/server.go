package server

import (
	"context"
	"net/http"

	"ecostore-api/internal/handler"
	appmiddleware "ecostore-api/internal/middleware"
	"ecostore-api/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo           *echo.Echo
	logger         *zap.Logger
	userService    service.UserService
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
}

func NewServer(
	userService service.UserService,
	orderService service.OrderService,
	paymentService service.PaymentService,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// the storefront calls /payment/gettoken/:user_id/:token/
	e.Pre(middleware.RemoveTrailingSlash())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		logger:         logger,
		userService:    userService,
		orderHandler:   handler.NewOrderHandler(orderService, logger),
		paymentHandler: handler.NewPaymentHandler(paymentService, logger),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- orders --------
	order := s.echo.Group("/order")
	orderAuth := appmiddleware.SessionAuth(s.userService, handler.OrderAuthFailure)
	order.POST("/add/:user_id/:token", s.orderHandler.AddOrder, orderAuth)
	order.GET("/list/:user_id/:token", s.orderHandler.ListOrders, orderAuth)

	// -------- payments --------
	payment := s.echo.Group("/payment")
	paymentAuth := appmiddleware.SessionAuth(s.userService, handler.PaymentAuthFailure)
	for _, path := range []string{"/token/:user_id/:token", "/gettoken/:user_id/:token"} {
		payment.GET(path, s.paymentHandler.GenerateToken, paymentAuth)
		payment.POST(path, s.paymentHandler.GenerateToken, paymentAuth)
	}
	payment.POST("/process/:user_id/:token", s.paymentHandler.ProcessPayment, paymentAuth)
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	s.logger.Info("starting http server", zap.String("address", address))
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger writes one access line per request. Only the route template
// is logged because session tokens travel in the path.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogRoutePath: true,
		LogRequestID: true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("route", v.RoutePath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
