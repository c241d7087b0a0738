package payment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kayexpress/internal/domain"
	"kayexpress/internal/middleware"
	"kayexpress/internal/pkg/response"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.POST("/payments", h.Initiate)
	protected.GET("/payments", h.ListMine)
	protected.GET("/payments/:reference", h.Get)
	protected.POST("/payments/:reference/verify", h.Verify)

	admin.POST("/payments/:reference/refund", h.Refund)
	admin.GET("/payments/stats", h.Stats)
}

// RegisterWebhook mounts the gateway callback behind its signature
// check. The route is public, authentication is the HMAC header.
func (h *Handler) RegisterWebhook(public *gin.RouterGroup, secret string) {
	public.POST("/webhooks/gateway", middleware.GatewaySignature(secret), h.Webhook)
}

// Initiate godoc
// @Summary      Initiate a payment
// @Description  Charges a pending booking through the payment gateway
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body InitiatePaymentRequest true "Payment payload"
// @Success      201 {object} domain.Payment
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /payments [post]
func (h *Handler) Initiate(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	userID, admin := caller(c)
	p, err := h.service.Initiate(c.Request.Context(), userID, admin, req)
	if err != nil {
		h.loggerf("level=error msg=payment initiation rejected booking=%s err=%v", req.BookingReference, err)
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

// Webhook godoc
// @Summary      Gateway callback
// @Description  Settles a payment from a signed gateway notification
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Success      200 {object} WebhookAck
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /webhooks/gateway [post]
func (h *Handler) Webhook(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Could not read request body")
		return
	}
	h.loggerf("level=info msg=gateway webhook received body=%s", raw)

	p, err := h.service.HandleWebhook(c.Request.Context(), raw)
	if err != nil {
		h.loggerf("level=error msg=gateway webhook rejected err=%v", err)
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, WebhookAck{Status: string(p.Status), Reference: p.Reference})
}

// Verify godoc
// @Summary      Verify a payment
// @Description  Polls the gateway and settles the payment if it reached a final state
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Param        reference path string true "Payment reference"
// @Success      200 {object} domain.Payment
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{reference}/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	userID, admin := caller(c)
	p, err := h.service.Verify(c.Request.Context(), c.Param("reference"), userID, admin)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

// Get godoc
// @Summary      Get a payment
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Param        reference path string true "Payment reference"
// @Success      200 {object} domain.Payment
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{reference} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, admin := caller(c)
	p, err := h.service.Get(c.Request.Context(), c.Param("reference"), userID, admin)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

// ListMine godoc
// @Summary      List my payments
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200 {array} domain.Payment
// @Router       /payments [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := caller(c)
	limit, offset := parsePage(c)

	payments, total, err := h.service.ListMine(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.List(c, http.StatusOK, payments, total)
}

// Refund godoc
// @Summary      Refund a payment
// @Description  Reverses a successful payment, refunds its booking and releases the seats
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Param        reference path string true "Payment reference"
// @Success      200 {object} domain.Payment
// @Failure      409 {object} ErrorResponse
// @Router       /admin/payments/{reference}/refund [post]
func (h *Handler) Refund(c *gin.Context) {
	p, err := h.service.Refund(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

// Stats godoc
// @Summary      Payment statistics
// @Description  Counts and sums by status, method and mobile money provider
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} repository.PaymentStats
// @Router       /admin/payments/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrPaymentNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this payment")
	case errors.Is(err, ErrAlreadyPaid):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "This booking has already been paid")
	case errors.Is(err, ErrNotPayable), errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, ErrPaymentDeadline):
		response.Error(c, http.StatusConflict, "PAYMENT_DEADLINE_PASSED", "The payment deadline has passed and the booking has expired")
	case errors.Is(err, ErrAmountMismatch):
		response.Error(c, http.StatusConflict, "AMOUNT_MISMATCH", "Gateway amount does not match the payment")
	case errors.Is(err, refnum.ErrDuplicateReference):
		response.Error(c, http.StatusServiceUnavailable, "REFERENCE_CONFLICT", "Could not allocate a payment reference, please retry")
	case errors.Is(err, repository.ErrConcurrentModification):
		response.Error(c, http.StatusServiceUnavailable, "TRANSIENT_CONFLICT", "The payment was modified concurrently, please retry")
	default:
		h.loggerf("level=error msg=unhandled payment error err=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func caller(c *gin.Context) (int64, bool) {
	return c.GetInt64("user_id"), c.GetString("role") == string(domain.RoleAdmin)
}

func parsePage(c *gin.Context) (limit, offset int) {
	limit = 20
	if raw := c.Query("limit"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}
	if raw := c.Query("page"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 1 {
			offset = (val - 1) * limit
		}
	}
	return limit, offset
}
