package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"size:64;uniqueIndex;not null"` // sent to the gateway as its order id
	UserID    *uint  `gorm:"index"`
	User      *User  `gorm:"constraint:OnDelete:CASCADE"`

	ProductNames  string `gorm:"size:500"`
	ProductCount  int    `gorm:"not null;default:0"`
	TransactionID string `gorm:"size:150;index"`
	AmountMinor   int64  `gorm:"not null;default:0"` // total in minor units of CurrencyCode
	CurrencyCode  string `gorm:"size:10;not null;default:USD"`

	PaymentMethod     PaymentMethod     `gorm:"size:50;not null;default:Card"`
	TransactionStatus TransactionStatus `gorm:"size:50;not null;default:settled"`
	State             OrderState        `gorm:"size:16;index;not null"`

	PayPal            PayPalDetails `gorm:"embedded;embeddedPrefix:paypal_"`
	ProcessorResponse *string       `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	if o.CurrencyCode == "" {
		o.CurrencyCode = DefaultCurrency
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentMethodCard
	}
	if o.TransactionStatus == "" {
		o.TransactionStatus = TransactionStatusSettled
	}
	if o.State == "" {
		o.State = OrderStateConfirmed
	}

	if !o.PaymentMethod.Valid() {
		return fmt.Errorf("invalid payment method %q", o.PaymentMethod)
	}
	if !o.TransactionStatus.Valid() {
		return fmt.Errorf("invalid transaction status %q", o.TransactionStatus)
	}
	if !o.State.Valid() {
		return fmt.Errorf("invalid order state %q", o.State)
	}
	return nil
}

func (o *Order) IsPayPal() bool {
	return o.PaymentMethod == PaymentMethodPayPal
}

// AmountString is the total as a decimal string, e.g. "19.99".
func (o *Order) AmountString() string {
	return FormatAmount(o.AmountMinor, o.CurrencyCode)
}

// FormattedAmount is the total for display, e.g. "$19.99 USD".
func (o *Order) FormattedAmount() string {
	return fmt.Sprintf("$%s %s", o.AmountString(), o.CurrencyCode)
}

func (o *Order) String() string {
	owner := "Unknown"
	if o.User != nil {
		owner = o.User.Email
	}
	return fmt.Sprintf("Order #%d - %s - %s - %s", o.ID, owner, o.PaymentMethod, o.FormattedAmount())
}
