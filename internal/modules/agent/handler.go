package agent

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

// RegisterRoutes mounts the application form on public and the review
// endpoints on admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/agents/register", h.Register)

	admin.GET("/agents", h.List)
	admin.GET("/agents/:id", h.Get)
	admin.PATCH("/agents/:id/status", h.Review)
}

// Register handles POST /api/v1/agents/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	a, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	// Applicants get back the bits they need to follow up, not the
	// whole record.
	response.Success(c, http.StatusCreated, gin.H{
		"agent_id":         a.ID,
		"reference_number": a.Reference,
		"status":           a.Status,
	})
}

// List handles GET /api/v1/admin/agents?status=...&region=...
func (h *Handler) List(c *gin.Context) {
	f := repository.AgentFilters{
		Status: domain.AgentStatus(c.Query("status")),
		Region: c.Query("region"),
	}
	f.Limit, f.Offset = parsePage(c)

	agents, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.List(c, http.StatusOK, agents, total)
}

// Get handles GET /api/v1/admin/agents/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agent": a})
}

// Review handles PATCH /api/v1/admin/agents/:id/status
func (h *Handler) Review(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ReviewAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	a, err := h.service.Review(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agent": a})
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
	case errors.Is(err, ErrBadReferral):
		response.Error(c, http.StatusBadRequest, "INVALID_REFERRAL", "Invalid referral code")
	case errors.Is(err, ErrAgentNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Agent application not found")
	case errors.Is(err, ErrAlreadyApplied):
		response.Error(c, http.StatusConflict, "ALREADY_EXISTS", "An application with this phone or email already exists")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "This application has already been reviewed")
	case errors.Is(err, refnum.ErrDuplicateReference):
		response.Error(c, http.StatusServiceUnavailable, "REFERENCE_CONFLICT", "Could not allocate a reference number, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
