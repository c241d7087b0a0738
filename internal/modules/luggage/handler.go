package luggage

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kayexpress/internal/domain"
	"kayexpress/internal/pkg/response"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts tracking and the type catalogue on public,
// check-in on protected and the handling workflow on admin.
func (h *Handler) RegisterRoutes(public, protected, admin *gin.RouterGroup) {
	public.GET("/luggage-types", h.ListActiveTypes)
	public.GET("/luggage/:reference/track", h.Track)

	protected.POST("/luggage", h.CheckIn)
	protected.GET("/bookings/:reference/luggage", h.ListForBooking)

	admin.GET("/luggage-types", h.ListAllTypes)
	admin.POST("/luggage-types", h.CreateType)
	admin.PUT("/luggage-types/:id", h.UpdateType)
	admin.POST("/luggage/:reference/events", h.AddEvent)
}

// CheckIn handles POST /api/v1/luggage
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInLuggageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	userID, admin := caller(c)
	l, err := h.service.CheckIn(c.Request.Context(), userID, admin, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"luggage": l})
}

// Track handles GET /api/v1/luggage/:reference/track
func (h *Handler) Track(c *gin.Context) {
	view, err := h.service.Track(c.Request.Context(), c.Param("reference"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"luggage": view})
}

// ListForBooking handles GET /api/v1/bookings/:reference/luggage
func (h *Handler) ListForBooking(c *gin.Context) {
	userID, admin := caller(c)
	items, err := h.service.ListForBooking(c.Request.Context(), c.Param("reference"), userID, admin)
	if err != nil {
		handleError(c, err)
		return
	}
	response.List(c, http.StatusOK, items, int64(len(items)))
}

// AddEvent handles POST /api/v1/admin/luggage/:reference/events
func (h *Handler) AddEvent(c *gin.Context) {
	var req AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	userID, _ := caller(c)
	l, err := h.service.AddEvent(c.Request.Context(), c.Param("reference"), userID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"luggage": l})
}

// ListActiveTypes handles GET /api/v1/luggage-types
func (h *Handler) ListActiveTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context(), true)
	if err != nil {
		handleError(c, err)
		return
	}
	response.List(c, http.StatusOK, types, int64(len(types)))
}

// ListAllTypes handles GET /api/v1/admin/luggage-types
func (h *Handler) ListAllTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context(), false)
	if err != nil {
		handleError(c, err)
		return
	}
	response.List(c, http.StatusOK, types, int64(len(types)))
}

// CreateType handles POST /api/v1/admin/luggage-types
func (h *Handler) CreateType(c *gin.Context) {
	var req CreateLuggageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	t, err := h.service.CreateType(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"luggage_type": t})
}

// UpdateType handles PUT /api/v1/admin/luggage-types/:id
func (h *Handler) UpdateType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateLuggageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	t, err := h.service.UpdateType(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"luggage_type": t})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrOverweight):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrTypeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Luggage type not found")
	case errors.Is(err, ErrLuggageNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Luggage not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this booking")
	case errors.Is(err, ErrTypeExists):
		response.Error(c, http.StatusConflict, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, ErrNotCheckable), errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, refnum.ErrDuplicateReference):
		response.Error(c, http.StatusServiceUnavailable, "REFERENCE_CONFLICT", "Could not allocate a luggage tag, please retry")
	case errors.Is(err, repository.ErrConcurrentModification):
		response.Error(c, http.StatusServiceUnavailable, "TRANSIENT_CONFLICT", "The luggage was updated concurrently, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func caller(c *gin.Context) (int64, bool) {
	return c.GetInt64("user_id"), c.GetString("role") == string(domain.RoleAdmin)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
