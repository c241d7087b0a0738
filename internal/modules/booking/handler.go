package booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

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

// RegisterRoutes mounts rider bookings on the authenticated group and
// the oversight endpoints on admin.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.POST("/bookings", h.Create)
	protected.GET("/bookings", h.ListMine)
	protected.GET("/bookings/:reference", h.Get)
	protected.GET("/bookings/:reference/ticket", h.Ticket)
	protected.POST("/bookings/:reference/cancel", h.Cancel)

	admin.GET("/bookings", h.List)
	admin.PATCH("/bookings/:id/complete", h.Complete)
}

// Create handles POST /api/v1/bookings
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	userID, _ := caller(c)
	b, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": NewView(b, time.Now())})
}

// ListMine handles GET /api/v1/bookings
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := caller(c)
	f := repository.BookingFilters{
		Status: domain.BookingStatus(c.Query("status")),
	}
	f.Limit, f.Offset = parsePage(c)

	bookings, total, err := h.service.ListMine(c.Request.Context(), userID, f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, NewViews(bookings, time.Now()), total)
}

// Get handles GET /api/v1/bookings/:reference
func (h *Handler) Get(c *gin.Context) {
	userID, admin := caller(c)
	b, err := h.service.Get(c.Request.Context(), c.Param("reference"), userID, admin)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": NewView(b, time.Now())})
}

// Ticket handles GET /api/v1/bookings/:reference/ticket and streams
// the e-ticket PDF.
func (h *Handler) Ticket(c *gin.Context) {
	userID, admin := caller(c)
	pdf, filename, err := h.service.Ticket(c.Request.Context(), c.Param("reference"), userID, admin)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Cancel handles POST /api/v1/bookings/:reference/cancel. The body is
// optional, riders may cancel without giving a reason.
func (h *Handler) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
			return
		}
	}

	userID, admin := caller(c)
	b, err := h.service.Cancel(c.Request.Context(), c.Param("reference"), userID, admin, req.Reason)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": NewView(b, time.Now())})
}

// List handles GET /api/v1/admin/bookings?status=&trip_id=
func (h *Handler) List(c *gin.Context) {
	f := repository.BookingFilters{
		Status: domain.BookingStatus(c.Query("status")),
	}
	if raw := c.Query("trip_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			f.TripID = v
		}
	}
	f.Limit, f.Offset = parsePage(c)

	bookings, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, NewViews(bookings, time.Now()), total)
}

// Complete handles PATCH /api/v1/admin/bookings/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": NewView(b, time.Now())})
}

func caller(c *gin.Context) (userID int64, admin bool) {
	return c.GetInt64("user_id"), c.GetString("role") == string(domain.RoleAdmin)
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
	case errors.Is(err, ErrTripNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Trip not found")
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "This booking belongs to another account")
	case errors.Is(err, ErrNotBookable), errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, repository.ErrInsufficientSeats):
		response.Error(c, http.StatusConflict, "INSUFFICIENT_SEATS", "Not enough seats left on this trip")
	case errors.Is(err, repository.ErrConcurrentModification):
		response.Error(c, http.StatusServiceUnavailable, "TRANSIENT_CONFLICT", "The booking could not be recorded, please retry")
	case errors.Is(err, refnum.ErrDuplicateReference):
		response.Error(c, http.StatusServiceUnavailable, "REFERENCE_CONFLICT", "Could not allocate a reference number, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
