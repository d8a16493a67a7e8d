package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ecostore-api/internal/apperror"
	"ecostore-api/internal/client"
	"ecostore-api/internal/dto"
	"ecostore-api/internal/model"
	"ecostore-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	GenerateClientToken(ctx context.Context) (string, error)
	ProcessPayment(ctx context.Context, userID uint, req *dto.ProcessPaymentRequest) (*dto.ProcessPaymentResponse, error)
}

// DeclinedError is returned when the gateway rejects a charge.
type DeclinedError struct {
	Errors []string // "code: message"
}

func (e *DeclinedError) Error() string {
	if len(e.Errors) == 0 {
		return "Payment processing failed"
	}
	return strings.Join(e.Errors, "; ")
}

type paymentServiceImpl struct {
	braintreeClient   client.BraintreeClient
	orderRepo         repository.OrderRepository
	paypalDescription string
	logger            *zap.Logger
}

func NewPaymentService(
	braintreeClient client.BraintreeClient,
	orderRepo repository.OrderRepository,
	paypalDescription string,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		braintreeClient:   braintreeClient,
		orderRepo:         orderRepo,
		paypalDescription: paypalDescription,
		logger:            logger,
	}
}

func (s *paymentServiceImpl) GenerateClientToken(ctx context.Context) (string, error) {
	token, err := s.braintreeClient.GenerateClientToken(ctx)
	if err != nil {
		return "", apperror.Wrap(apperror.KindGateway, err, "payment gateway unavailable")
	}
	return token, nil
}

func (s *paymentServiceImpl) ProcessPayment(ctx context.Context, userID uint, req *dto.ProcessPaymentRequest) (*dto.ProcessPaymentResponse, error) {
	nonce := strings.TrimSpace(req.PaymentMethodNonce)
	if nonce == "" {
		return nil, apperror.InvalidInput("paymentMethodNonce is required")
	}

	currency, err := model.NormalizeCurrency(req.CurrencyCode)
	if err != nil {
		return nil, apperror.InvalidInput("currencyCode %q is invalid", req.CurrencyCode)
	}
	if req.Amount.String() == "" {
		return nil, apperror.InvalidInput("amount is required")
	}
	amountMinor, err := model.ParseAmount(req.Amount.String(), currency)
	if err != nil || amountMinor == 0 {
		return nil, apperror.InvalidInput("amount %q is invalid", req.Amount.String())
	}

	method := model.ParsePaymentMethod(req.PaymentMethodType)

	// The pending record exists before money moves, so a crash after the
	// charge leaves a row that can be matched to the gateway by reference.
	order := &model.Order{
		Reference:         uuid.NewString(),
		UserID:            &userID,
		AmountMinor:       amountMinor,
		CurrencyCode:      currency,
		PaymentMethod:     method,
		TransactionStatus: model.TransactionStatusSettlementPending,
		State:             model.OrderStatePending,
	}
	if err := s.orderRepo.Create(ctx, nil, order); err != nil {
		return nil, apperror.Internal(fmt.Errorf("store pending order: %w", err))
	}

	saleReq := &client.SaleRequest{
		AmountMinor: amountMinor,
		Scale:       int(model.MinorUnitScale(currency)),
		Nonce:       nonce,
		OrderID:     order.Reference,
	}
	if method == model.PaymentMethodPayPal {
		saleReq.PayPal = &client.PayPalOptions{
			PayeeEmail:  req.PaymentDetails.String("paypalEmail"),
			CustomField: fmt.Sprintf("Order for user %d", userID),
			Description: s.paypalDescription,
		}
	}

	result, err := s.braintreeClient.Sale(ctx, saleReq)
	if err != nil {
		// the outcome is unknown, so the order stays pending for reconciliation
		s.logger.Error("braintree sale failed",
			zap.String("reference", order.Reference),
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, apperror.Wrap(apperror.KindGateway, err, "payment gateway unavailable")
	}

	if !result.Success {
		declined := &DeclinedError{Errors: formatGatewayErrors(result.Errors)}
		s.logger.Info("payment declined",
			zap.String("reference", order.Reference),
			zap.Uint("user_id", userID),
			zap.Strings("errors", declined.Errors),
		)
		if err := s.orderRepo.MarkFailed(ctx, order.Reference); err != nil {
			s.logger.Error("mark order failed", zap.String("reference", order.Reference), zap.Error(err))
		}
		return nil, apperror.Wrap(apperror.KindGateway, declined, declined.Error())
	}

	tx := result.Transaction
	s.confirm(ctx, order, tx)

	s.logger.Info("payment charged",
		zap.String("reference", order.Reference),
		zap.String("transaction_id", tx.ID),
		zap.Uint("user_id", userID),
		zap.String("status", tx.Status),
		zap.String("payment_method", string(order.PaymentMethod)),
	)

	return &dto.ProcessPaymentResponse{
		Success:     true,
		Transaction: toTransactionDTO(tx),
	}, nil
}

// confirm records the gateway outcome on the pending order. The charge has
// already happened, so a failed write is logged with everything needed to
// repair the row and the caller still gets the transaction.
func (s *paymentServiceImpl) confirm(ctx context.Context, order *model.Order, tx *client.Transaction) {
	order.TransactionID = tx.ID
	order.TransactionStatus = model.StatusFromGateway(tx.Status)
	order.State = model.OrderStateConfirmed
	if tx.CurrencyISOCode != "" {
		order.CurrencyCode = tx.CurrencyISOCode
	}
	if order.PaymentMethod == model.PaymentMethodUnknown && tx.PaymentInstrumentType != "" {
		order.PaymentMethod = model.ParsePaymentMethod(tx.PaymentInstrumentType)
	}
	if p := tx.PayPal; p != nil {
		order.PayPal.Set(p.PayerEmail, p.PayerID, p.AuthorizationID, p.CaptureID)
	}
	if raw, err := json.Marshal(tx); err == nil {
		response := string(raw)
		order.ProcessorResponse = &response
	}

	if err := s.orderRepo.Save(ctx, nil, order); err != nil {
		s.logger.Error("confirm charged order",
			zap.String("reference", order.Reference),
			zap.String("transaction_id", tx.ID),
			zap.Error(err),
		)
	}
}

func formatGatewayErrors(errs []client.GatewayError) []string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Code, e.Message))
	}
	if len(messages) == 0 {
		messages = append(messages, "Payment processing failed")
	}
	return messages
}

func toTransactionDTO(tx *client.Transaction) *dto.Transaction {
	out := &dto.Transaction{
		ID:                    tx.ID,
		Amount:                tx.Amount,
		Status:                tx.Status,
		PaymentInstrumentType: tx.PaymentInstrumentType,
		CurrencyIsoCode:       tx.CurrencyISOCode,
	}
	if tx.CreatedAt != nil {
		createdAt := tx.CreatedAt.UTC().Format(time.RFC3339)
		out.CreatedAt = &createdAt
	}
	if p := tx.PayPal; p != nil {
		out.Paypal = &dto.PaypalTransaction{
			PayerEmail:      p.PayerEmail,
			PayerID:         p.PayerID,
			AuthorizationID: p.AuthorizationID,
			CaptureID:       p.CaptureID,
		}
	}
	return out
}
