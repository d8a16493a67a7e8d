package model

// PayPalDetails holds the PayPal-only identifiers of an order. Each column is
// NULL unless a non-empty value was supplied.
type PayPalDetails struct {
	PayerEmail      *string `gorm:"size:254"`
	PayerID         *string `gorm:"size:100"`
	AuthorizationID *string `gorm:"size:100"`
	CaptureID       *string `gorm:"size:100"`
}

// Set fills the columns that are still NULL with the non-empty values given.
// Values already recorded, e.g. from the gateway, are kept.
func (d *PayPalDetails) Set(payerEmail, payerID, authorizationID, captureID string) {
	setIfPresent(&d.PayerEmail, payerEmail)
	setIfPresent(&d.PayerID, payerID)
	setIfPresent(&d.AuthorizationID, authorizationID)
	setIfPresent(&d.CaptureID, captureID)
}

func (d PayPalDetails) Email() string {
	if d.PayerEmail == nil {
		return ""
	}
	return *d.PayerEmail
}

func setIfPresent(dst **string, v string) {
	if v == "" || *dst != nil {
		return
	}
	*dst = &v
}
