package catalog

import (
	"errors"
	"net/http"

	"parvarish/internal/domain"
	"parvarish/internal/pkg/response"
	"parvarish/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/daycares", h.ListDaycares)
	api.GET("/daycares/:id", h.GetDaycare)
	api.GET("/public/schedules", h.ListSchedules)
}

// ListDaycares handles GET /api/daycares?city=&state=
func (h *Handler) ListDaycares(c *gin.Context) {
	f := repository.DaycareFilters{
		City:  c.Query("city"),
		State: c.Query("state"),
	}

	daycares, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch daycares")
		return
	}

	response.Success(c, http.StatusOK, daycares)
}

// GetDaycare handles GET /api/daycares/:id
func (h *Handler) GetDaycare(c *gin.Context) {
	d, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Daycare not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch daycare")
		return
	}

	response.Success(c, http.StatusOK, d)
}

// ListSchedules handles GET /api/public/schedules
func (h *Handler) ListSchedules(c *gin.Context) {
	response.Success(c, http.StatusOK, domain.Schedules)
}
