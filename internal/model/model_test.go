package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     int64
		wantErr  bool
	}{
		{"19.99", "USD", 1999, false},
		{"0", "USD", 0, false},
		{"100", "USD", 10000, false},
		{" 5.5 ", "EUR", 550, false},
		{"1500", "JPY", 1500, false},
		{"19.999", "USD", 0, true},
		{"15.5", "JPY", 0, true},
		{"-1.00", "USD", 0, true},
		{"abc", "USD", 0, true},
		{"", "USD", 0, true},
		{"1.5e1", "USD", 1500, false},
		{"1e30000000", "USD", 0, true},
		{"1e-10000000", "USD", 0, true},
		{"0e-10000000", "USD", 0, true},
		{"1e19", "USD", 0, true},
		{strings.Repeat("9", 41), "USD", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.amount+"_"+tt.currency, func(t *testing.T) {
			got, err := ParseAmount(tt.amount, tt.currency)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount_LargeExponentRejectedQuickly(t *testing.T) {
	start := time.Now()
	for _, amount := range []string{"1e2147483647", "1e-2147483648", "9e30000000"} {
		_, err := ParseAmount(amount, "USD")
		assert.Error(t, err, amount)
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "19.99", FormatAmount(1999, "USD"))
	assert.Equal(t, "0.05", FormatAmount(5, "USD"))
	assert.Equal(t, "1500", FormatAmount(1500, "JPY"))
}

func TestNormalizeCurrency(t *testing.T) {
	code, err := NormalizeCurrency("")
	require.NoError(t, err)
	assert.Equal(t, "USD", code)

	code, err = NormalizeCurrency("eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", code)

	_, err = NormalizeCurrency("EURO")
	assert.Error(t, err)
	_, err = NormalizeCurrency("U$D")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	assert.Equal(t, PaymentMethodCard, ParsePaymentMethod("Card"))
	assert.Equal(t, PaymentMethodCard, ParsePaymentMethod("CreditCard"))
	assert.Equal(t, PaymentMethodCard, ParsePaymentMethod("credit_card"))
	assert.Equal(t, PaymentMethodPayPal, ParsePaymentMethod("PayPalAccount"))
	assert.Equal(t, PaymentMethodPayPal, ParsePaymentMethod("paypal_account"))
	assert.Equal(t, PaymentMethodVenmo, ParsePaymentMethod("VenmoAccount"))
	assert.Equal(t, PaymentMethodApplePay, ParsePaymentMethod("ApplePayCard"))
	assert.Equal(t, PaymentMethodGooglePay, ParsePaymentMethod("AndroidPayCard"))
	assert.Equal(t, PaymentMethodUnknown, ParsePaymentMethod("bitcoin"))
	assert.Equal(t, PaymentMethodUnknown, ParsePaymentMethod(""))
}

func TestParseTransactionStatus(t *testing.T) {
	status, err := ParseTransactionStatus("settlement_pending")
	require.NoError(t, err)
	assert.Equal(t, TransactionStatusSettlementPending, status)

	_, err = ParseTransactionStatus("captured")
	assert.Error(t, err)
}

func TestStatusFromGateway(t *testing.T) {
	assert.Equal(t, TransactionStatusSettlementPending, StatusFromGateway("submitted_for_settlement"))
	assert.Equal(t, TransactionStatusSettled, StatusFromGateway("settled"))
	assert.Equal(t, TransactionStatusAuthorized, StatusFromGateway("authorized"))
	assert.Equal(t, TransactionStatusVoided, StatusFromGateway("voided"))
	assert.Equal(t, TransactionStatusFailed, StatusFromGateway("processor_declined"))
	assert.Equal(t, TransactionStatusFailed, StatusFromGateway("gateway_rejected"))
}

func TestOrder_BeforeSave(t *testing.T) {
	order := &Order{}
	require.NoError(t, order.BeforeSave(nil))
	assert.Equal(t, "USD", order.CurrencyCode)
	assert.Equal(t, PaymentMethodCard, order.PaymentMethod)
	assert.Equal(t, TransactionStatusSettled, order.TransactionStatus)
	assert.Equal(t, OrderStateConfirmed, order.State)

	bad := &Order{TransactionStatus: "captured"}
	assert.Error(t, bad.BeforeSave(nil))

	badMethod := &Order{PaymentMethod: "Cash"}
	assert.Error(t, badMethod.BeforeSave(nil))
}

func TestOrder_Display(t *testing.T) {
	order := &Order{ID: 7, AmountMinor: 1999, CurrencyCode: "USD", PaymentMethod: PaymentMethodPayPal}

	assert.True(t, order.IsPayPal())
	assert.Equal(t, "19.99", order.AmountString())
	assert.Equal(t, "$19.99 USD", order.FormattedAmount())
	assert.Equal(t, "Order #7 - Unknown - PayPalAccount - $19.99 USD", order.String())
}

func TestPayPalDetails_SetSkipsEmpty(t *testing.T) {
	var d PayPalDetails
	d.Set("buyer@example.com", "", "AUTH-1", "")

	require.NotNil(t, d.PayerEmail)
	assert.Equal(t, "buyer@example.com", d.Email())
	assert.Nil(t, d.PayerID)
	require.NotNil(t, d.AuthorizationID)
	assert.Equal(t, "AUTH-1", *d.AuthorizationID)
	assert.Nil(t, d.CaptureID)
}

func TestPayPalDetails_SetKeepsRecordedValues(t *testing.T) {
	var d PayPalDetails
	d.Set("gateway@example.com", "", "", "")
	d.Set("client@example.com", "PAYER1", "", "")

	assert.Equal(t, "gateway@example.com", d.Email())
	require.NotNil(t, d.PayerID)
	assert.Equal(t, "PAYER1", *d.PayerID)
}
