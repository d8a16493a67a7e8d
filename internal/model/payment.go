package model

import (
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	PaymentMethodCard      PaymentMethod = "Card"
	PaymentMethodPayPal    PaymentMethod = "PayPalAccount"
	PaymentMethodVenmo     PaymentMethod = "Venmo"
	PaymentMethodApplePay  PaymentMethod = "ApplePay"
	PaymentMethodGooglePay PaymentMethod = "GooglePay"
	PaymentMethodUnknown   PaymentMethod = "unknown"
)

// paymentMethodAliases maps the names used by the drop-in widget and by
// Braintree's payment_instrument_type onto the stored values.
var paymentMethodAliases = map[string]PaymentMethod{
	"card":             PaymentMethodCard,
	"creditcard":       PaymentMethodCard,
	"credit_card":      PaymentMethodCard,
	"paypalaccount":    PaymentMethodPayPal,
	"paypal":           PaymentMethodPayPal,
	"paypal_account":   PaymentMethodPayPal,
	"venmo":            PaymentMethodVenmo,
	"venmoaccount":     PaymentMethodVenmo,
	"venmo_account":    PaymentMethodVenmo,
	"applepay":         PaymentMethodApplePay,
	"applepaycard":     PaymentMethodApplePay,
	"apple_pay_card":   PaymentMethodApplePay,
	"googlepay":        PaymentMethodGooglePay,
	"androidpaycard":   PaymentMethodGooglePay,
	"android_pay_card": PaymentMethodGooglePay,
	"unknown":          PaymentMethodUnknown,
}

// ParsePaymentMethod never fails: names it does not recognise are "unknown".
func ParsePaymentMethod(s string) PaymentMethod {
	if m, ok := paymentMethodAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m
	}
	return PaymentMethodUnknown
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPayPal, PaymentMethodVenmo,
		PaymentMethodApplePay, PaymentMethodGooglePay, PaymentMethodUnknown:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusAuthorized        TransactionStatus = "authorized"
	TransactionStatusSettled           TransactionStatus = "settled"
	TransactionStatusSettlementPending TransactionStatus = "settlement_pending"
	TransactionStatusFailed            TransactionStatus = "failed"
	TransactionStatusVoided            TransactionStatus = "voided"
	TransactionStatusRefunded          TransactionStatus = "refunded"
)

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	status := TransactionStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", fmt.Errorf("unknown transaction status %q", s)
	}
	return status, nil
}

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusAuthorized, TransactionStatusSettled, TransactionStatusSettlementPending,
		TransactionStatusFailed, TransactionStatusVoided, TransactionStatusRefunded:
		return true
	}
	return false
}

// StatusFromGateway maps a Braintree transaction status onto the stored set.
func StatusFromGateway(gatewayStatus string) TransactionStatus {
	switch gatewayStatus {
	case "authorized", "authorizing":
		return TransactionStatusAuthorized
	case "submitted_for_settlement", "settling", "settlement_pending", "settlement_confirmed":
		return TransactionStatusSettlementPending
	case "settled":
		return TransactionStatusSettled
	case "voided", "authorization_expired":
		return TransactionStatusVoided
	default:
		return TransactionStatusFailed
	}
}

// OrderState tracks the two-phase record written around a gateway charge.
type OrderState string

const (
	OrderStatePending   OrderState = "pending"
	OrderStateConfirmed OrderState = "confirmed"
	OrderStateFailed    OrderState = "failed"
)

func (s OrderState) Valid() bool {
	return s == OrderStatePending || s == OrderStateConfirmed || s == OrderStateFailed
}
