package trip

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/pkg/response"
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

// RegisterRoutes mounts rider search on public and scheduling on admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/trips", h.SearchTrips) // GET /api/v1/trips?origin=&destination=&date=
	public.GET("/trips/:id", h.GetTrip)

	admin.POST("/trips", h.CreateTrip)
	admin.GET("/trips", h.ListTrips)
	admin.PUT("/trips/:id", h.UpdateTrip)
	admin.PATCH("/trips/:id/status", h.SetTripStatus)
}

// CreateTrip handles POST /api/v1/admin/trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	t, err := h.service.CreateTrip(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"trip": t})
}

// UpdateTrip handles PUT /api/v1/admin/trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	t, err := h.service.UpdateTrip(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"trip": t})
}

// SetTripStatus handles PATCH /api/v1/admin/trips/:id/status
func (h *Handler) SetTripStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTripStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	t, swept, err := h.service.SetTripStatus(c.Request.Context(), id, req.Status, req.Reason)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"trip":             t,
		"bookings_updated": swept,
	})
}

// GetTrip handles GET /api/v1/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.service.GetTrip(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"trip": t})
}

// SearchTrips handles GET /api/v1/trips
func (h *Handler) SearchTrips(c *gin.Context) {
	f, ok := parseTripFilters(c)
	if !ok {
		return
	}

	trips, total, err := h.service.SearchTrips(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, trips, total)
}

// ListTrips handles GET /api/v1/admin/trips
func (h *Handler) ListTrips(c *gin.Context) {
	f, ok := parseTripFilters(c)
	if !ok {
		return
	}
	f.Status = domain.TripStatus(c.Query("status"))

	trips, total, err := h.service.ListTrips(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, trips, total)
}

func parseTripFilters(c *gin.Context) (repository.TripFilters, bool) {
	var f repository.TripFilters

	if raw := c.Query("route_id"); raw != "" {
		if val, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.RouteID = val
		}
	}
	if raw := c.Query("origin"); raw != "" {
		if val, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.OriginID = val
		}
	}
	if raw := c.Query("destination"); raw != "" {
		if val, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.DestinationID = val
		}
	}
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
			return f, false
		}
		f.Date = &day
	}
	if raw := c.Query("seats"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			f.MinSeats = val
		}
	}

	f.Limit = 20
	if raw := c.Query("limit"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}
	if raw := c.Query("page"); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	return f, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrTripNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Trip not found")
	case errors.Is(err, ErrRouteNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	case errors.Is(err, ErrBusNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bus not found")
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrRouteInactive), errors.Is(err, ErrBusUnavailable):
		response.Error(c, http.StatusConflict, "NOT_AVAILABLE", err.Error())
	case errors.Is(err, ErrTripLocked):
		response.Error(c, http.StatusConflict, "TRIP_LOCKED", "Only scheduled trips can be edited")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
