package fleet

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the rider-facing reads on public and the fleet
// management endpoints on admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/terminals", h.ListPublicTerminals) // GET /api/v1/terminals?region=...
	public.GET("/terminals/:id", h.GetTerminal)
	public.GET("/routes", h.ListPublicRoutes)
	public.GET("/routes/:id", h.GetRoute)

	admin.POST("/terminals", h.CreateTerminal)
	admin.GET("/terminals", h.ListTerminals)
	admin.PUT("/terminals/:id", h.UpdateTerminal)

	admin.POST("/buses", h.RegisterBus)
	admin.GET("/buses", h.ListBuses)
	admin.GET("/buses/:id", h.GetBus)
	admin.PUT("/buses/:id", h.UpdateBus)
	admin.PATCH("/buses/:id/status", h.SetBusStatus)

	admin.POST("/routes", h.CreateRoute)
	admin.PUT("/routes/:id", h.UpdateRoute)

	admin.GET("/fleet/stats", h.Stats)
}

/* ---------- TERMINAL HANDLERS ---------- */

// CreateTerminal handles POST /api/v1/admin/terminals
func (h *Handler) CreateTerminal(c *gin.Context) {
	var req CreateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	t, err := h.service.CreateTerminal(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"terminal": t})
}

// UpdateTerminal handles PUT /api/v1/admin/terminals/:id
func (h *Handler) UpdateTerminal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	t, err := h.service.UpdateTerminal(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"terminal": t})
}

// GetTerminal handles GET /api/v1/terminals/:id
func (h *Handler) GetTerminal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.service.GetTerminal(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"terminal": t})
}

// ListPublicTerminals handles GET /api/v1/terminals. Riders only ever
// see active terminals.
func (h *Handler) ListPublicTerminals(c *gin.Context) {
	f := repository.TerminalFilters{
		Region:     c.Query("region"),
		Type:       domain.TerminalType(c.Query("type")),
		ActiveOnly: true,
	}
	f.Limit, f.Offset = parsePage(c)

	terminals, total, err := h.service.ListTerminals(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, terminals, total)
}

// ListTerminals handles GET /api/v1/admin/terminals
func (h *Handler) ListTerminals(c *gin.Context) {
	f := repository.TerminalFilters{
		Region:     c.Query("region"),
		Type:       domain.TerminalType(c.Query("type")),
		ActiveOnly: c.Query("active") == "true",
	}
	f.Limit, f.Offset = parsePage(c)

	terminals, total, err := h.service.ListTerminals(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, terminals, total)
}

/* ---------- BUS HANDLERS ---------- */

// RegisterBus handles POST /api/v1/admin/buses
func (h *Handler) RegisterBus(c *gin.Context) {
	var req CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	b, err := h.service.RegisterBus(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"bus": b})
}

// UpdateBus handles PUT /api/v1/admin/buses/:id
func (h *Handler) UpdateBus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	b, err := h.service.UpdateBus(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bus": b})
}

// GetBus handles GET /api/v1/admin/buses/:id
func (h *Handler) GetBus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBus(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bus": b})
}

// ListBuses handles GET /api/v1/admin/buses?status=...&type=...
func (h *Handler) ListBuses(c *gin.Context) {
	f := repository.BusFilters{
		Status: domain.BusStatus(c.Query("status")),
		Type:   domain.BusType(c.Query("type")),
	}
	f.Limit, f.Offset = parsePage(c)

	buses, total, err := h.service.ListBuses(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, buses, total)
}

// SetBusStatus handles PATCH /api/v1/admin/buses/:id/status
func (h *Handler) SetBusStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBusStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	b, err := h.service.SetBusStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bus": b})
}

/* ---------- ROUTE HANDLERS ---------- */

// CreateRoute handles POST /api/v1/admin/routes
func (h *Handler) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	route, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"route": route})
}

// UpdateRoute handles PUT /api/v1/admin/routes/:id
func (h *Handler) UpdateRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	route, err := h.service.UpdateRoute(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"route": route})
}

// GetRoute handles GET /api/v1/routes/:id
func (h *Handler) GetRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"route": route})
}

// ListPublicRoutes handles GET /api/v1/routes?origin=...&destination=...
func (h *Handler) ListPublicRoutes(c *gin.Context) {
	f := repository.RouteFilters{ActiveOnly: true}
	if origin := c.Query("origin"); origin != "" {
		if val, err := strconv.ParseInt(origin, 10, 64); err == nil {
			f.OriginID = val
		}
	}
	if dest := c.Query("destination"); dest != "" {
		if val, err := strconv.ParseInt(dest, 10, 64); err == nil {
			f.DestinationID = val
		}
	}
	f.Limit, f.Offset = parsePage(c)

	routes, total, err := h.service.ListRoutes(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, routes, total)
}

/* ---------- STATS ---------- */

// Stats handles GET /api/v1/admin/fleet/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
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
	case errors.Is(err, ErrValidation), errors.Is(err, ErrSameTerminals):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrTerminalNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Terminal not found")
	case errors.Is(err, ErrBusNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bus not found")
	case errors.Is(err, ErrRouteNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrDuplicatePlate):
		response.Error(c, http.StatusConflict, "DUPLICATE_PLATE", "A bus with this plate number already exists")
	case errors.Is(err, ErrDuplicateRoute):
		response.Error(c, http.StatusConflict, "DUPLICATE_ROUTE", "A route between these terminals already exists")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
