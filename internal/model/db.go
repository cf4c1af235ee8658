package model

import "time"

const (
	SaleStatusPending = "pending"
	SaleStatusPaid    = "paid"
)

type Sale struct {
	ID        string  `gorm:"primaryKey;size:64;not null"` // <product tag>_<uuid>
	Name      string  `gorm:"size:255;not null"`           // full name as typed by the buyer
	Email     string  `gorm:"size:255;index;not null"`
	CPF       string  `gorm:"column:cpf;size:14;not null"` // digits only
	Product   string  `gorm:"size:128;not null"`
	PaymentID *string `gorm:"column:payment_id;size:64;index"`        // mercado pago payment id
	Status    string  `gorm:"size:16;index;not null;default:pending"` // pending, paid
	Whatsapp  *string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Sale) TableName() string {
	return "sales"
}

type WebhookEvent struct {
	ID             uint   `gorm:"primaryKey"`
	NotificationID string `gorm:"size:128;index"`
	EventType      string `gorm:"size:64;index"`
	Action         string `gorm:"size:64"`
	PaymentID      string `gorm:"size:64;index"`
	SaleID         string `gorm:"size:64;index"`
	Outcome        string `gorm:"size:32;index;not null"` // ignored, not_approved, marked_paid, already_handled, failed
	Detail         string `gorm:"size:512"`
	ProcessedAt    time.Time
}

const (
	OutcomeIgnored        = "ignored"
	OutcomeNotApproved    = "not_approved"
	OutcomeMarkedPaid     = "marked_paid"
	OutcomeAlreadyHandled = "already_handled"
	OutcomeFailed         = "failed"
)
