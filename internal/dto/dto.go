package dto

import "time"

type ProductDetail struct {
	ID       any    `json:"id,omitempty"`
	Name     string `json:"name"`
	Price    any    `json:"price,omitempty"`
	Quantity any    `json:"quantity,omitempty"`
}

// AddOrderRequest is accepted as JSON or as a form post.
type AddOrderRequest struct {
	TransactionID FlexString `json:"transaction_id" form:"transaction_id"`
	Amount        FlexString `json:"amount" form:"amount"`
	Products      Products   `json:"products" form:"products"`

	PaymentMethod     string `json:"payment_method" form:"payment_method"`
	TransactionStatus string `json:"transaction_status" form:"transaction_status"`
	CurrencyCode      string `json:"currency_code" form:"currency_code"`

	PaypalPayerEmail      string `json:"paypal_payer_email" form:"paypal_payer_email"`
	PaypalPayerID         string `json:"paypal_payer_id" form:"paypal_payer_id"`
	PaypalAuthorizationID string `json:"paypal_authorization_id" form:"paypal_authorization_id"`
	PaypalCaptureID       string `json:"paypal_capture_id" form:"paypal_capture_id"`

	ProductDetails ProductDetails `json:"product_details" form:"product_details"`
}

type AddOrderResponse struct {
	Success       bool   `json:"success"`
	Error         bool   `json:"error"`
	Msg           string `json:"msg"`
	OrderID       uint   `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	PaymentMethod string `json:"payment_method"`
	PaypalEmail   string `json:"paypal_email,omitempty"`
}

type OrderSummary struct {
	ID                uint      `json:"id"`
	TransactionID     string    `json:"transaction_id"`
	Products          string    `json:"products"`
	ProductCount      int       `json:"product_count"`
	Amount            string    `json:"amount"`
	CurrencyCode      string    `json:"currency_code"`
	FormattedAmount   string    `json:"formatted_amount"`
	PaymentMethod     string    `json:"payment_method"`
	TransactionStatus string    `json:"transaction_status"`
	State             string    `json:"state"`
	IsPaypal          bool      `json:"is_paypal"`
	PaypalEmail       string    `json:"paypal_email,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type ListOrdersResponse struct {
	Success bool            `json:"success"`
	Orders  []*OrderSummary `json:"orders"`
}

// ProcessPaymentRequest mirrors what the drop-in checkout posts.
type ProcessPaymentRequest struct {
	PaymentMethodNonce string         `json:"paymentMethodNonce" form:"paymentMethodNonce"`
	Amount             FlexString     `json:"amount" form:"amount"`
	PaymentMethodType  string         `json:"paymentMethodType" form:"paymentMethodType"`
	CurrencyCode       string         `json:"currencyCode" form:"currencyCode"`
	PaymentDetails     PaymentDetails `json:"paymentDetails" form:"paymentDetails"`
}

type PaypalTransaction struct {
	PayerEmail      string `json:"payerEmail"`
	PayerID         string `json:"payerId"`
	AuthorizationID string `json:"authorizationId"`
	CaptureID       string `json:"captureId"`
}

type Transaction struct {
	ID                    string             `json:"id"`
	Amount                string             `json:"amount"`
	Status                string             `json:"status"`
	PaymentInstrumentType string             `json:"paymentInstrumentType"`
	CurrencyIsoCode       string             `json:"currencyIsoCode"`
	CreatedAt             *string            `json:"createdAt"`
	Paypal                *PaypalTransaction `json:"paypal,omitempty"`
}

type ProcessPaymentResponse struct {
	Success     bool         `json:"success"`
	Transaction *Transaction `json:"transaction"`
}

type PaymentErrorResponse struct {
	Error           bool     `json:"error"`
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	BraintreeErrors []string `json:"braintree_errors,omitempty"`
}

type ClientTokenResponse struct {
	ClientToken string `json:"clientToken"`
	Success     bool   `json:"success"`
}
