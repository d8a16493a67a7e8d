package handler

import (
	"errors"
	"net/http"

	"ecostore-api/internal/apperror"
	"ecostore-api/internal/dto"
	"ecostore-api/internal/middleware"
	"ecostore-api/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

var PaymentAuthFailure = map[string]string{
	"error": "Invalid session, Please login again!",
}

func (h *PaymentHandler) GenerateToken(c echo.Context) error {
	ctx := c.Request().Context()

	token, err := h.paymentService.GenerateClientToken(ctx)
	if err != nil {
		return h.fail(c, middleware.UserID(c), err)
	}

	return c.JSON(http.StatusOK, &dto.ClientTokenResponse{
		ClientToken: token,
		Success:     true,
	})
}

func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, userID, apperror.Wrap(apperror.KindInvalidInput, err, "invalid request body"))
	}

	result, err := h.paymentService.ProcessPayment(ctx, userID, &req)
	if err != nil {
		return h.fail(c, userID, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) fail(c echo.Context, userID uint, err error) error {
	var declined *service.DeclinedError
	if errors.As(err, &declined) {
		return c.JSON(http.StatusOK, &dto.PaymentErrorResponse{
			Error:           true,
			Success:         false,
			Message:         declined.Error(),
			BraintreeErrors: declined.Errors,
		})
	}

	if apperror.KindOf(err) == apperror.KindInternal {
		h.logger.Error("payment request failed", zap.Uint("user_id", userID), zap.Error(err))
	} else {
		h.logger.Warn("payment request rejected", zap.Uint("user_id", userID), zap.Error(err))
	}

	return c.JSON(http.StatusOK, &dto.PaymentErrorResponse{
		Error:   true,
		Success: false,
		Message: "Payment processing error: " + apperror.PublicMessage(err),
	})
}
