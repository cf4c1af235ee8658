package client

import (
	"apostila-pix-store/internal/config"
	"apostila-pix-store/internal/model"
	"context"
	"fmt"

	"resty.dev/v3"
)

type MercadoPagoClient interface {
	Configured() bool
	CreatePayment(ctx context.Context, payment *model.PaymentRequest, idempotencyKey string) (*model.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*model.Payment, error)
}

type mercadoPagoClientImpl struct {
	httpClient  *resty.Client
	accessToken string
}

func NewMercadoPagoClient(cfg *config.MercadoPago) MercadoPagoClient {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseApiURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json")

	return &mercadoPagoClientImpl{
		httpClient:  httpClient,
		accessToken: cfg.AccessToken,
	}
}

func (c *mercadoPagoClientImpl) Configured() bool {
	return c.accessToken != ""
}

func (c *mercadoPagoClientImpl) CreatePayment(ctx context.Context, payment *model.PaymentRequest, idempotencyKey string) (*model.Payment, error) {
	var result model.Payment
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Idempotency-Key", idempotencyKey).
		SetBody(payment).
		SetResult(&result).
		Post("/v1/payments")
	if err != nil {
		return nil, fmt.Errorf("mercado pago create payment request: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("mercado pago error %d: %s", resp.StatusCode(), resp.String())
	}

	if result.ID == 0 {
		return nil, fmt.Errorf("mercado pago response has no payment id")
	}

	return &result, nil
}

func (c *mercadoPagoClientImpl) GetPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("empty payment id")
	}

	var result model.Payment
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", paymentID).
		SetResult(&result).
		Get("/v1/payments/{id}")
	if err != nil {
		return nil, fmt.Errorf("mercado pago get payment request: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("mercado pago error %d: %s", resp.StatusCode(), resp.String())
	}

	return &result, nil
}
