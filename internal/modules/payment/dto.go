package payment

type InitiatePaymentRequest struct {
	BookingReference string `json:"booking_reference" binding:"required" example:"KB20250810A3F2B1"`
	Method           string `json:"payment_method" binding:"required" example:"mobile_money"`
	MomoProvider     string `json:"momo_provider" binding:"omitempty,momoprovider" example:"mtn_momo"`
	MomoNumber       string `json:"momo_number" binding:"omitempty,ghanaphone" example:"0244123456"`
}

type WebhookAck struct {
	Status    string `json:"status" example:"successful"`
	Reference string `json:"reference" example:"PAY20250810A3F2B1C4"`
}

// ErrorResponse documents the error envelope for swagger only; the
// handlers build it through the response package.
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	Error   struct {
		Code    string `json:"code" example:"INVALID_STATE"`
		Message string `json:"message" example:"This booking has already been paid"`
	} `json:"error"`
}
