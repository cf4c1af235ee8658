package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type Payer struct {
	Email          string         `json:"email"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Identification Identification `json:"identification"`
}

// PaymentRequest is the body of POST /v1/payments.
type PaymentRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description"`
	PaymentMethodID   string  `json:"payment_method_id"`
	Payer             Payer   `json:"payer"`
	NotificationURL   string  `json:"notification_url"`
	ExternalReference string  `json:"external_reference"`
}

type TransactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
}

type PointOfInteraction struct {
	TransactionData TransactionData `json:"transaction_data"`
}

// Payment is the subset of the Mercado Pago payment resource this service reads.
type Payment struct {
	ID                 int64              `json:"id"`
	Status             string             `json:"status"` // pending, approved, rejected, cancelled, ...
	StatusDetail       string             `json:"status_detail"`
	ExternalReference  string             `json:"external_reference"`
	PointOfInteraction PointOfInteraction `json:"point_of_interaction"`
}

func (p *Payment) IDString() string {
	if p.ID == 0 {
		return ""
	}
	return strconv.FormatInt(p.ID, 10)
}

const PaymentStatusApproved = "approved"

// FlexibleID accepts an identifier sent either as a JSON string or a JSON number.
// Mercado Pago is not consistent about it across notification versions.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

type NotificationData struct {
	ID FlexibleID `json:"id"`
}

// PaymentNotification is the webhook body Mercado Pago posts to notification_url.
type PaymentNotification struct {
	ID     FlexibleID       `json:"id"`
	Type   string           `json:"type"`
	Action string           `json:"action"`
	Data   NotificationData `json:"data"`
}

const NotificationTypePayment = "payment"
