package booking

import (
	"errors"
	"net/http"
	"strings"

	"parvarish/internal/domain"
	"parvarish/internal/middleware"
	"parvarish/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListBookings)
	rg.POST("/bookings", middleware.RequireRole(domain.RoleParent), h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PATCH("/bookings/:id", h.UpdateStatus)
}

// CreateBooking POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err, "Failed to create booking")
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Booking created successfully", gin.H{"booking": b})
}

// ListBookings GET /api/bookings
func (h *Handler) ListBookings(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	bookings, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err, "Failed to fetch bookings")
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

// GetBooking GET /api/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch booking")
		return
	}

	response.Success(c, http.StatusOK, b)
}

// UpdateStatus PATCH /api/bookings/:id
func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err, "Failed to update booking")
		return
	}

	response.Success(c, http.StatusOK, b)
}

func actorFrom(c *gin.Context) (Actor, bool) {
	userID, role, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return Actor{}, false
	}
	return Actor{UserID: userID, Role: role}, true
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", strings.TrimPrefix(err.Error(), ErrValidation.Error()+": "))
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Invalid status")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Status change not allowed")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
