package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecostore-api/internal/apperror"
	"ecostore-api/internal/dto"
	"ecostore-api/internal/model"
	"ecostore-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	AddOrder(ctx context.Context, userID uint, req *dto.AddOrderRequest) (*dto.AddOrderResponse, error)
	ListOrders(ctx context.Context, userID uint) ([]*dto.OrderSummary, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		db:        db,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// orderInput is an AddOrderRequest after validation.
type orderInput struct {
	transactionID     string
	amountMinor       int64
	currency          string
	paymentMethod     model.PaymentMethod
	transactionStatus model.TransactionStatus
	productNames      string
	productCount      int
}

func (s *orderServiceImpl) AddOrder(ctx context.Context, userID uint, req *dto.AddOrderRequest) (*dto.AddOrderResponse, error) {
	in, err := parseOrderInput(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User does not exist")
		}
		return nil, apperror.Internal(fmt.Errorf("find user: %w", err))
	}

	var order *model.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.orderRepo.FindOpenByTransactionID(ctx, tx, userID, in.transactionID)
		switch {
		case err == nil:
			order = existing
			s.reconcile(order, in)
			setPayPalFields(order, req)
			return s.orderRepo.Save(ctx, tx, order)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return fmt.Errorf("find order by transaction id: %w", err)
		}

		order = &model.Order{
			Reference:         uuid.NewString(),
			UserID:            &userID,
			ProductNames:      in.productNames,
			ProductCount:      in.productCount,
			TransactionID:     in.transactionID,
			AmountMinor:       in.amountMinor,
			CurrencyCode:      in.currency,
			PaymentMethod:     in.paymentMethod,
			TransactionStatus: in.transactionStatus,
			State:             model.OrderStateConfirmed,
		}
		setPayPalFields(order, req)

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.String("transaction_id", order.TransactionID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("amount", order.FormattedAmount()),
		zap.Int("product_count", order.ProductCount),
	)

	resp := &dto.AddOrderResponse{
		Success:       true,
		Error:         false,
		Msg:           fmt.Sprintf("Order placed successfully via %s", order.PaymentMethod),
		OrderID:       order.ID,
		TransactionID: order.TransactionID,
		PaymentMethod: string(order.PaymentMethod),
	}
	if order.IsPayPal() {
		resp.PaypalEmail = order.PayPal.Email()
	}

	return resp, nil
}

// reconcile fills the product side of an order that the payment flow already
// recorded. Amount, status and method stay as the gateway reported them.
func (s *orderServiceImpl) reconcile(order *model.Order, in *orderInput) {
	if order.AmountMinor != in.amountMinor || order.CurrencyCode != in.currency {
		s.logger.Warn("order amount differs from charged amount",
			zap.Uint("order_id", order.ID),
			zap.String("transaction_id", order.TransactionID),
			zap.String("charged", order.FormattedAmount()),
			zap.String("submitted", model.FormatAmount(in.amountMinor, in.currency)+" "+in.currency),
		)
	}

	order.ProductNames = in.productNames
	order.ProductCount = in.productCount
	order.State = model.OrderStateConfirmed
	if order.PaymentMethod == model.PaymentMethodUnknown {
		order.PaymentMethod = in.paymentMethod
	}
}

func parseOrderInput(req *dto.AddOrderRequest) (*orderInput, error) {
	in := &orderInput{
		transactionID: req.TransactionID.String(),
		paymentMethod: model.PaymentMethodCard,
		productNames:  req.Products.Names,
	}
	if in.transactionID == "" {
		return nil, apperror.InvalidInput("transaction_id is required")
	}

	currency, err := model.NormalizeCurrency(req.CurrencyCode)
	if err != nil {
		return nil, apperror.InvalidInput("currency_code %q is invalid", req.CurrencyCode)
	}
	in.currency = currency

	if req.Amount.String() == "" {
		return nil, apperror.InvalidInput("amount is required")
	}
	in.amountMinor, err = model.ParseAmount(req.Amount.String(), currency)
	if err != nil {
		return nil, apperror.InvalidInput("amount %q is invalid", req.Amount.String())
	}

	if strings.TrimSpace(req.PaymentMethod) != "" {
		in.paymentMethod = model.ParsePaymentMethod(req.PaymentMethod)
	}

	in.transactionStatus = model.TransactionStatusSettled
	if strings.TrimSpace(req.TransactionStatus) != "" {
		in.transactionStatus, err = model.ParseTransactionStatus(req.TransactionStatus)
		if err != nil {
			return nil, apperror.InvalidInput("transaction_status %q is invalid", req.TransactionStatus)
		}
	}

	if req.Products.IsString {
		in.productCount = CountProducts(req.Products.Names)
	} else {
		in.productCount = len(req.ProductDetails)
		if in.productNames == "" {
			in.productNames = strings.Join(req.ProductDetails.Names(), ",")
		}
	}
	if len(in.productNames) > 500 {
		return nil, apperror.InvalidInput("products must be at most 500 characters")
	}

	return in, nil
}

// CountProducts counts the names in a comma-delimited product list. The
// storefront terminates the list with a comma, so trailing empty segments do
// not count, and neither do blank ones.
func CountProducts(products string) int {
	count := 0
	for _, name := range strings.Split(products, ",") {
		if strings.TrimSpace(name) != "" {
			count++
		}
	}
	return count
}

func setPayPalFields(order *model.Order, req *dto.AddOrderRequest) {
	if !order.IsPayPal() {
		return
	}
	order.PayPal.Set(
		strings.TrimSpace(req.PaypalPayerEmail),
		strings.TrimSpace(req.PaypalPayerID),
		strings.TrimSpace(req.PaypalAuthorizationID),
		strings.TrimSpace(req.PaypalCaptureID),
	)
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID uint) ([]*dto.OrderSummary, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list orders: %w", err))
	}

	summaries := make([]*dto.OrderSummary, len(orders))
	for i, order := range orders {
		summaries[i] = &dto.OrderSummary{
			ID:                order.ID,
			TransactionID:     order.TransactionID,
			Products:          order.ProductNames,
			ProductCount:      order.ProductCount,
			Amount:            order.AmountString(),
			CurrencyCode:      order.CurrencyCode,
			FormattedAmount:   order.FormattedAmount(),
			PaymentMethod:     string(order.PaymentMethod),
			TransactionStatus: string(order.TransactionStatus),
			State:             string(order.State),
			IsPaypal:          order.IsPayPal(),
			PaypalEmail:       order.PayPal.Email(),
			CreatedAt:         order.CreatedAt,
		}
	}

	return summaries, nil
}
