package client

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"ecostore-api/internal/config"

	"github.com/braintree-go/braintree-go"
)

// --- INTERFACE ---

type BraintreeClient interface {
	// GenerateClientToken returns the token the drop-in widget initializes with
	GenerateClientToken(ctx context.Context) (string, error)

	// Sale charges a single-use nonce and submits it for settlement. A gateway
	// rejection is reported in the result, not as an error.
	Sale(ctx context.Context, req *SaleRequest) (*SaleResult, error)
}

type PayPalOptions struct {
	PayeeEmail  string
	CustomField string
	Description string
}

type SaleRequest struct {
	AmountMinor int64
	Scale       int // decimal places of AmountMinor
	Nonce       string
	OrderID     string
	PayPal      *PayPalOptions
}

type PayPalTransactionDetails struct {
	PayerEmail      string
	PayerID         string
	AuthorizationID string
	CaptureID       string
}

type Transaction struct {
	ID                    string
	Amount                string
	Status                string
	PaymentInstrumentType string
	CurrencyISOCode       string
	CreatedAt             *time.Time
	PayPal                *PayPalTransactionDetails
}

type GatewayError struct {
	Code    string
	Message string
}

type SaleResult struct {
	Success     bool
	Transaction *Transaction
	Errors      []GatewayError
}

// --- IMPLEMENTATION ---

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeClient initializes the Braintree SDK gateway
func NewBraintreeClient(cfg *config.Braintree) (BraintreeClient, error) {
	if cfg.MerchantID == "" || cfg.PublicKey == "" || cfg.PrivateKey == "" {
		return nil, errors.New("braintree merchant id, public key and private key must be configured")
	}

	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)
	gateway.HttpClient = &http.Client{
		Timeout: cfg.Timeout,
	}

	return &braintreeClientImpl{
		gateway: gateway,
	}, nil
}

// --- METHODS ---

func (c *braintreeClientImpl) GenerateClientToken(ctx context.Context) (string, error) {
	token, err := c.gateway.ClientToken().Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("generate client token: %w", err)
	}
	return token, nil
}

func (c *braintreeClientImpl) Sale(ctx context.Context, req *SaleRequest) (*SaleResult, error) {
	txReq := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(req.AmountMinor, req.Scale),
		PaymentMethodNonce: req.Nonce,
		OrderId:            req.OrderID,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true, // Captures the funds immediately
		},
	}
	if req.PayPal != nil {
		txReq.Options.TransactionOptionsPaypalRequest = &braintree.TransactionOptionsPaypalRequest{
			PayeeEmail:  req.PayPal.PayeeEmail,
			CustomField: req.PayPal.CustomField,
			Description: req.PayPal.Description,
		}
	}

	tx, err := c.gateway.Transaction().Create(ctx, txReq)
	if err != nil {
		var btErr *braintree.BraintreeError
		if errors.As(err, &btErr) {
			return &SaleResult{Errors: rejectionErrors(btErr)}, nil
		}
		return nil, fmt.Errorf("transaction creation failed: %w", err)
	}

	return &SaleResult{
		Success:     true,
		Transaction: toTransaction(tx),
	}, nil
}

// rejectionErrors flattens a gateway rejection into code/message pairs:
// every nested validation error, or the processor response for a decline.
func rejectionErrors(btErr *braintree.BraintreeError) []GatewayError {
	errs := validationErrors(btErr.All())
	if len(errs) > 0 {
		return errs
	}

	if tx := btErr.Transaction; tx != nil && tx.ProcessorResponseText != "" {
		return []GatewayError{{
			Code:    fmt.Sprint(tx.ProcessorResponseCode),
			Message: tx.ProcessorResponseText,
		}}
	}

	msg := btErr.ErrorMessage
	if msg == "" {
		msg = "Payment processing failed"
	}
	return []GatewayError{{Code: "gateway", Message: msg}}
}

// validationErrors orders errors by code then attribute. The SDK collects
// nested errors from a map, so its order varies between calls.
func validationErrors(verrs []braintree.ValidationError) []GatewayError {
	sorted := slices.Clone(verrs)
	slices.SortStableFunc(sorted, func(a, b braintree.ValidationError) int {
		return cmp.Or(cmp.Compare(a.Code, b.Code), cmp.Compare(a.Attribute, b.Attribute))
	})

	errs := make([]GatewayError, 0, len(sorted))
	for _, v := range sorted {
		errs = append(errs, GatewayError{Code: v.Code, Message: v.Message})
	}
	return errs
}

func toTransaction(tx *braintree.Transaction) *Transaction {
	out := &Transaction{
		ID:                    tx.Id,
		Status:                string(tx.Status),
		PaymentInstrumentType: string(tx.PaymentInstrumentType),
		CurrencyISOCode:       tx.CurrencyISOCode,
		CreatedAt:             tx.CreatedAt,
	}
	if tx.Amount != nil {
		out.Amount = tx.Amount.String()
	}
	if d := tx.PayPalDetails; d != nil {
		out.PayPal = &PayPalTransactionDetails{
			PayerEmail:      d.PayerEmail,
			PayerID:         d.PayerID,
			AuthorizationID: d.AuthorizationID,
			CaptureID:       d.CaptureID,
		}
	}
	return out
}
