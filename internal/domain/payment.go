package domain

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

// PaymentTransaction settles exactly one completed charging session.
type PaymentTransaction struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	SessionID     string        `json:"session_id" gorm:"uniqueIndex"`
	CustomerID    string        `json:"customer_id" gorm:"index"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	ProviderID    string        `json:"provider_id,omitempty"` // External charge ID
	FailureReason string        `json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
}
