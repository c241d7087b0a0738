package quote

import (
	"errors"
	"net/http"
	"strconv"

	"kayexpress/internal/domain"
	"kayexpress/internal/pkg/response"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the request form and tracking on public and
// the pricing workflow on admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/quotes", h.Submit)
	public.GET("/quotes/:reference", h.Track)

	admin.GET("/quotes", h.List)
	admin.GET("/quotes/:id", h.Get)
	admin.POST("/quotes/:id/respond", h.Respond)
	admin.PATCH("/quotes/:id/status", h.SetStatus)
}

// Submit handles POST /api/v1/quotes
func (h *Handler) Submit(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	q, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quote": q})
}

// Track handles GET /api/v1/quotes/:reference. Anyone holding the
// reference can look it up, so contact details are masked.
func (h *Handler) Track(c *gin.Context) {
	q, err := h.service.Track(c.Request.Context(), c.Param("reference"))
	if err != nil {
		handleError(c, err)
		return
	}

	view := gin.H{
		"reference_number":     q.Reference,
		"status":               q.Status,
		"phone_number":         domain.MaskPhone(q.Phone),
		"pickup_location":      q.PickupLocation,
		"destination":          q.Destination,
		"travel_date":          q.TravelDate,
		"number_of_passengers": q.Passengers,
		"trip_type":            q.TripType,
		"created_at":           q.CreatedAt,
	}
	if q.Status != domain.QuotePending {
		view["quote_amount"] = q.QuoteAmount
		view["quote_notes"] = q.QuoteNotes
		view["quoted_at"] = q.QuotedAt
	}

	response.Success(c, http.StatusOK, gin.H{"quote": view})
}

// List handles GET /api/v1/admin/quotes?status=...
func (h *Handler) List(c *gin.Context) {
	f := repository.QuoteFilters{
		Status: domain.QuoteStatus(c.Query("status")),
	}
	f.Limit, f.Offset = parsePage(c)

	quotes, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, quotes, total)
}

// Get handles GET /api/v1/admin/quotes/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	q, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quote": q})
}

// Respond handles POST /api/v1/admin/quotes/:id/respond
func (h *Handler) Respond(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RespondQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	q, err := h.service.Respond(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quote": q})
}

// SetStatus handles PATCH /api/v1/admin/quotes/:id/status
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	q, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quote": q})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func parsePage(c *gin.Context) (limit, offset int) {
	limit = 20
	if raw := c.Query("limit"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}
	if raw := c.Query("page"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			offset = (val - 1) * limit
		}
	}
	return limit, offset
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrQuoteNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Quote request not found")
	case errors.Is(err, ErrTooManyQuotes):
		response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many quote requests from this phone number, try again later")
	case errors.Is(err, ErrAlreadyQuoted):
		response.Error(c, http.StatusConflict, "ALREADY_QUOTED", "This request has already been priced")
	case errors.Is(err, ErrBadTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, refnum.ErrDuplicateReference):
		response.Error(c, http.StatusServiceUnavailable, "REFERENCE_CONFLICT", "Could not allocate a reference number, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
