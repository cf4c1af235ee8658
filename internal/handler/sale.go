package handler

import (
	"apostila-pix-store/internal/dto"
	"apostila-pix-store/internal/model"
	"apostila-pix-store/internal/service"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SaleHandler struct {
	saleService service.SaleService
	logger      *zap.Logger
}

func NewSaleHandler(saleService service.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		logger:      logger,
	}
}

func (h *SaleHandler) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.saleService.CreatePayment(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "fullName, email and a valid cpf are required"})
		case errors.Is(err, service.ErrConfiguration):
			h.logger.Error("payment requested on an unconfigured server", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "server is not configured"})
		case errors.Is(err, service.ErrPersistence):
			return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "could not register the sale"})
		default:
			return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "could not create the payment"})
		}
	}

	return c.JSON(http.StatusOK, result)
}

func (h *SaleHandler) CheckStatus(c echo.Context) error {
	ctx := c.Request().Context()

	status, err := h.saleService.GetStatus(ctx, c.QueryParam("saleId"))
	if err != nil {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "sale not found"})
	}

	return c.JSON(http.StatusOK, dto.StatusResponse{Status: status})
}

// PaymentWebhook always answers 200 so the gateway does not retry; failures are logged.
func (h *SaleHandler) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	var notification model.PaymentNotification
	if err := c.Bind(&notification); err != nil {
		h.logger.Warn("undecodable payment notification", zap.Error(err))
		return c.NoContent(http.StatusOK)
	}

	if err := h.saleService.HandleNotification(ctx, &notification); err != nil {
		h.logger.Error("payment notification failed",
			zap.String("type", notification.Type),
			zap.String("payment_id", string(notification.Data.ID)),
			zap.Error(err),
		)
	}

	return c.NoContent(http.StatusOK)
}

func (h *SaleHandler) SaveWhatsapp(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SaveWhatsappRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	err := h.saleService.SaveWhatsapp(ctx, req.SaleID, req.Whatsapp)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "saleId and whatsapp are required"})
		}
		return c.JSON(http.StatusInternalServerError, dto.SaveWhatsappResponse{
			Success: false,
			Message: "could not save the number",
		})
	}

	return c.JSON(http.StatusOK, dto.SaveWhatsappResponse{
		Success: true,
		Message: "number saved",
	})
}
