package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

const (
	maxAmountLength   = 40
	maxAmountExponent = 18
)

// zeroDecimalCurrencies have no minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "ISK": true,
	"JPY": true, "KMF": true, "KRW": true, "PYG": true, "RWF": true,
	"UGX": true, "VND": true, "VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

// MinorUnitScale is the number of decimal digits of currency's minor unit.
func MinorUnitScale(currency string) int32 {
	if zeroDecimalCurrencies[currency] {
		return 0
	}
	return 2
}

// NormalizeCurrency upper-cases code, defaults it to USD and checks it is an
// ISO-4217 shaped three letter code.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	if len(code) != 3 {
		return "", fmt.Errorf("invalid currency code %q", code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("invalid currency code %q", code)
		}
	}
	return code, nil
}

// ParseAmount converts a decimal amount string into minor units of currency.
// Negative amounts and amounts finer than the minor unit are rejected.
func ParseAmount(amount, currency string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	if len(amount) > maxAmountLength {
		return 0, fmt.Errorf("amount is too long")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	// Shift and the comparisons below rescale to the exponent
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return 0, fmt.Errorf("amount %q is out of range", amount)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", amount)
	}

	scale := MinorUnitScale(currency)
	minor := d.Shift(scale)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", amount, scale)
	}
	if minor.GreaterThan(decimal.NewFromInt(1 << 53)) {
		return 0, fmt.Errorf("amount %q is out of range", amount)
	}

	return minor.IntPart(), nil
}

// FormatAmount renders minor units of currency as a fixed-point string.
func FormatAmount(minor int64, currency string) string {
	scale := MinorUnitScale(currency)
	return decimal.New(minor, -scale).StringFixed(scale)
}
