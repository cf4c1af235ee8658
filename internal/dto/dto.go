package dto

type CreatePaymentRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
}

type CreatePaymentResponse struct {
	SaleID       string `json:"saleId"`
	QRCodeText   string `json:"qrCodeText"`
	QRCodeBase64 string `json:"qrCodeBase64"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type SaveWhatsappRequest struct {
	SaleID   string `json:"saleId"`
	Whatsapp string `json:"whatsapp"`
}

type SaveWhatsappResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
