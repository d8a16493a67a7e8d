package handler

import (
	"net/http"

	"ecostore-api/internal/apperror"
	"ecostore-api/internal/dto"
	"ecostore-api/internal/middleware"
	"ecostore-api/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// OrderAuthFailure is what the storefront expects when the session is stale.
var OrderAuthFailure = map[string]string{
	"error": "Please re-login",
	"code":  "1",
}

type orderFailure struct {
	Error   bool   `json:"error"`
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

func (h *OrderHandler) AddOrder(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.AddOrderRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, userID, apperror.Wrap(apperror.KindInvalidInput, err, "invalid request body"))
	}

	result, err := h.orderService.AddOrder(ctx, userID, &req)
	if err != nil {
		return h.fail(c, userID, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	orders, err := h.orderService.ListOrders(ctx, userID)
	if err != nil {
		return h.fail(c, userID, err)
	}

	return c.JSON(http.StatusOK, &dto.ListOrdersResponse{
		Success: true,
		Orders:  orders,
	})
}

func (h *OrderHandler) fail(c echo.Context, userID uint, err error) error {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		h.logger.Error("order request failed", zap.Uint("user_id", userID), zap.Error(err))
	} else {
		h.logger.Info("order request rejected", zap.Uint("user_id", userID), zap.Stringer("kind", kind), zap.Error(err))
	}

	if kind == apperror.KindNotFound {
		return c.JSON(http.StatusOK, map[string]string{"error": apperror.PublicMessage(err)})
	}

	return c.JSON(http.StatusOK, &orderFailure{
		Error:   true,
		Success: false,
		Msg:     "Order creation failed: " + apperror.PublicMessage(err),
	})
}
