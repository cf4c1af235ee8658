package service

import (
	"apostila-pix-store/internal/client"
	"apostila-pix-store/internal/config"
	"apostila-pix-store/internal/dto"
	"apostila-pix-store/internal/model"
	"apostila-pix-store/internal/repository"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationPath is where Mercado Pago posts payment notifications.
const NotificationPath = "/webhook-mp-apostila"

const pixPaymentMethod = "pix"

type SaleService interface {
	CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	GetStatus(ctx context.Context, saleID string) (string, error)
	HandleNotification(ctx context.Context, notification *model.PaymentNotification) error
	SaveWhatsapp(ctx context.Context, saleID, whatsapp string) error
	ListOrphans(ctx context.Context, olderThan time.Duration) ([]*model.Sale, error)
}

// Product is the single item on sale.
type Product struct {
	Tag            string
	Name           string
	Description    string
	Price          decimal.Decimal
	FilePath       string
	AttachmentName string
	EmailSubject   string
}

func NewProduct(cfg *config.Product) (Product, error) {
	price, err := decimal.NewFromString(cfg.Price)
	if err != nil {
		return Product{}, fmt.Errorf("parse product price %q: %w", cfg.Price, err)
	}
	if !price.IsPositive() {
		return Product{}, fmt.Errorf("product price must be positive, got %s", price)
	}

	return Product{
		Tag:            cfg.Tag,
		Name:           cfg.Name,
		Description:    cfg.Description,
		Price:          price,
		FilePath:       cfg.FilePath,
		AttachmentName: cfg.AttachmentName,
		EmailSubject:   cfg.EmailSubject,
	}, nil
}

type saleServiceImpl struct {
	mpClient         client.MercadoPagoClient
	mailer           client.Mailer
	serviceBaseUrl   string
	product          Product
	saleRepo         repository.SaleRepository
	webhookEventRepo repository.WebhookEventRepository
	logger           *zap.Logger
}

// NewSaleService wires the sale lifecycle. saleRepo may be nil when no store is
// configured; operations that need it then fail with ErrConfiguration.
func NewSaleService(
	mpClient client.MercadoPagoClient,
	mailer client.Mailer,
	serviceBaseUrl string,
	product Product,
	saleRepo repository.SaleRepository,
	webhookEventRepo repository.WebhookEventRepository,
	logger *zap.Logger,
) SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &saleServiceImpl{
		mpClient:         mpClient,
		mailer:           mailer,
		serviceBaseUrl:   strings.TrimRight(serviceBaseUrl, "/"),
		product:          product,
		saleRepo:         saleRepo,
		webhookEventRepo: webhookEventRepo,
		logger:           logger,
	}
}

func (s *saleServiceImpl) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	if s.mpClient == nil || !s.mpClient.Configured() || s.serviceBaseUrl == "" || s.saleRepo == nil {
		return nil, ErrConfiguration
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	cpf := digitsOnly(req.CPF)
	if fullName == "" || email == "" || cpf == "" {
		return nil, fmt.Errorf("%w: fullName, email and cpf are required", ErrInvalidRequest)
	}
	if len(cpf) != cpfLength {
		return nil, fmt.Errorf("%w: cpf must have %d digits", ErrInvalidRequest, cpfLength)
	}
	firstName, lastName := splitName(fullName)

	sale := &model.Sale{
		ID:      s.product.Tag + "_" + uuid.NewString(),
		Name:    fullName,
		Email:   email,
		CPF:     cpf,
		Product: s.product.Name,
		Status:  model.SaleStatusPending,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		s.logger.Error("failed to store sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: store sale: %v", ErrPersistence, err)
	}

	payment, err := s.mpClient.CreatePayment(ctx, &model.PaymentRequest{
		TransactionAmount: s.product.Price.InexactFloat64(),
		Description:       s.product.Description,
		PaymentMethodID:   pixPaymentMethod,
		Payer: model.Payer{
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			Identification: model.Identification{
				Type:   "CPF",
				Number: cpf,
			},
		},
		NotificationURL:   s.serviceBaseUrl + NotificationPath,
		ExternalReference: sale.ID,
	}, sale.ID)
	if err != nil {
		// the sale row stays pending without a payment id; see ListOrphans
		s.logger.Error("failed to create payment", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	qr := payment.PointOfInteraction.TransactionData
	if qr.QRCode == "" || qr.QRCodeBase64 == "" {
		s.logger.Error("payment response has no pix qr code",
			zap.String("sale_id", sale.ID),
			zap.Int64("payment_id", payment.ID),
		)
		return nil, fmt.Errorf("%w: payment %d has no pix qr code", ErrGateway, payment.ID)
	}

	if err := s.saleRepo.SetPaymentID(ctx, sale.ID, payment.IDString()); err != nil {
		// The payment exists and the notification correlates by external_reference,
		// so the buyer still gets the qr code.
		s.logger.Error("failed to store payment id",
			zap.String("sale_id", sale.ID),
			zap.Int64("payment_id", payment.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("pix payment created",
		zap.String("sale_id", sale.ID),
		zap.Int64("payment_id", payment.ID),
		zap.String("amount", s.product.Price.StringFixed(2)),
	)

	return &dto.CreatePaymentResponse{
		SaleID:       sale.ID,
		QRCodeText:   qr.QRCode,
		QRCodeBase64: qr.QRCodeBase64,
	}, nil
}

func (s *saleServiceImpl) GetStatus(ctx context.Context, saleID string) (string, error) {
	if saleID == "" || s.saleRepo == nil {
		return "", ErrNotFound
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to read sale", zap.String("sale_id", saleID), zap.Error(err))
		}
		return "", ErrNotFound
	}

	return sale.Status, nil
}

// HandleNotification processes one gateway notification. The caller must
// acknowledge the notification whatever this returns; the error is only for logging.
func (s *saleServiceImpl) HandleNotification(ctx context.Context, notification *model.PaymentNotification) (err error) {
	event := &model.WebhookEvent{
		NotificationID: string(notification.ID),
		EventType:      notification.Type,
		Action:         notification.Action,
		PaymentID:      string(notification.Data.ID),
	}
	defer func() {
		if err != nil {
			event.Outcome = model.OutcomeFailed
			event.Detail = truncate(err.Error(), 512)
		}
		s.recordEvent(ctx, event)
	}()

	if notification.Type != model.NotificationTypePayment {
		event.Outcome = model.OutcomeIgnored
		return nil
	}
	if s.mpClient == nil || !s.mpClient.Configured() || s.saleRepo == nil {
		return fmt.Errorf("%w: cannot process payment notification", ErrConfiguration)
	}
	if event.PaymentID == "" {
		return fmt.Errorf("%w: notification without payment id", ErrInvalidRequest)
	}

	payment, err := s.mpClient.GetPayment(ctx, event.PaymentID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}

	event.SaleID = payment.ExternalReference
	if payment.Status != model.PaymentStatusApproved || payment.ExternalReference == "" {
		event.Outcome = model.OutcomeNotApproved
		s.logger.Info("payment notification without approval",
			zap.String("payment_id", event.PaymentID),
			zap.String("status", payment.Status),
			zap.String("sale_id", payment.ExternalReference),
		)
		return nil
	}

	sale, updated, err := s.saleRepo.MarkPaid(ctx, payment.ExternalReference)
	if err != nil {
		return fmt.Errorf("%w: mark sale paid: %v", ErrPersistence, err)
	}
	if !updated {
		event.Outcome = model.OutcomeAlreadyHandled
		s.logger.Info("sale already paid or unknown",
			zap.String("sale_id", payment.ExternalReference),
			zap.String("payment_id", event.PaymentID),
		)
		return nil
	}

	event.Outcome = model.OutcomeMarkedPaid
	s.logger.Info("sale marked paid",
		zap.String("sale_id", sale.ID),
		zap.String("payment_id", event.PaymentID),
	)

	s.fulfill(ctx, sale)
	return nil
}

func (s *saleServiceImpl) SaveWhatsapp(ctx context.Context, saleID, whatsapp string) error {
	saleID = strings.TrimSpace(saleID)
	whatsapp = strings.TrimSpace(whatsapp)
	if saleID == "" || whatsapp == "" {
		return fmt.Errorf("%w: saleId and whatsapp are required", ErrInvalidRequest)
	}
	if s.saleRepo == nil {
		return ErrConfiguration
	}

	if err := s.saleRepo.SetWhatsapp(ctx, saleID, whatsapp); err != nil {
		s.logger.Error("failed to store whatsapp", zap.String("sale_id", saleID), zap.Error(err))
		return fmt.Errorf("%w: store whatsapp: %v", ErrPersistence, err)
	}

	s.logger.Info("whatsapp saved", zap.String("sale_id", saleID))
	return nil
}

// ListOrphans returns pending sales that never got a payment id and are older
// than olderThan. Nothing is changed; an operator decides what to do with them.
func (s *saleServiceImpl) ListOrphans(ctx context.Context, olderThan time.Duration) ([]*model.Sale, error) {
	if s.saleRepo == nil {
		return nil, ErrConfiguration
	}
	if olderThan < 0 {
		return nil, fmt.Errorf("%w: negative age", ErrInvalidRequest)
	}

	sales, err := s.saleRepo.FindOrphaned(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return nil, fmt.Errorf("%w: find orphaned sales: %v", ErrPersistence, err)
	}

	return sales, nil
}

// fulfill emails the product to the buyer. Failures are logged only; the sale stays paid.
func (s *saleServiceImpl) fulfill(ctx context.Context, sale *model.Sale) {
	log := s.logger.With(zap.String("sale_id", sale.ID))

	if s.mailer == nil || !s.mailer.Configured() {
		log.Warn("email relay not configured, product not sent")
		return
	}

	content, err := os.ReadFile(s.product.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error("product file not found, product not sent", zap.String("path", s.product.FilePath))
			return
		}
		log.Error("failed to read product file", zap.String("path", s.product.FilePath), zap.Error(err))
		return
	}

	html, err := renderProductEmail(productEmailData{
		Name:        sale.Name,
		ProductName: s.product.Description,
	})
	if err != nil {
		log.Error("failed to render product email", zap.Error(err))
		return
	}

	err = s.mailer.Send(ctx, &client.Email{
		To:      sale.Email,
		Subject: s.product.EmailSubject,
		HTML:    html,
		Attachments: []client.Attachment{{
			Filename: s.product.AttachmentName,
			Content:  content,
		}},
	})
	if err != nil {
		log.Error("failed to send product email", zap.Error(err))
		return
	}

	log.Info("product email sent")
}

func (s *saleServiceImpl) recordEvent(ctx context.Context, event *model.WebhookEvent) {
	if s.webhookEventRepo == nil {
		return
	}
	if err := s.webhookEventRepo.Record(ctx, event); err != nil {
		s.logger.Warn("failed to record webhook event",
			zap.String("payment_id", event.PaymentID),
			zap.String("outcome", event.Outcome),
			zap.Error(err),
		)
	}
}
