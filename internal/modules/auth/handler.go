package auth

import (
	"errors"
	"net/http"

	"parvarish/internal/middleware"
	"parvarish/internal/pkg/response"
	"parvarish/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cookie  *session.Cookie
}

func NewHandler(service *Service, cookie *session.Cookie) *Handler {
	return &Handler{service: service, cookie: cookie}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/register", h.RegisterParent)
	api.POST("/daycare/register", h.RegisterDaycare)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/check", h.Check)
}

// RegisterParent POST /api/auth/register
func (h *Handler) RegisterParent(c *gin.Context) {
	var req RegisterParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	parent, err := h.service.RegisterParent(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Registration failed")
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Registration successful", gin.H{"parent": parent})
}

// RegisterDaycare POST /api/daycare/register
func (h *Handler) RegisterDaycare(c *gin.Context) {
	var req RegisterDaycareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	daycare, err := h.service.RegisterDaycare(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Registration failed")
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Registration successful", gin.H{"daycare": daycare})
}

// Login POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Login failed")
		return
	}

	h.cookie.Set(c, result.Token)
	response.SuccessWithMessage(c, http.StatusOK, "Login successful", gin.H{"user": result.User})
}

// Logout POST /api/auth/logout. Only the cookie is cleared; the token
// itself stays valid until it expires.
func (h *Handler) Logout(c *gin.Context) {
	h.cookie.Clear(c)
	response.SuccessWithMessage(c, http.StatusOK, "Logged out successfully", nil)
}

// Check GET /api/auth/check
func (h *Handler) Check(c *gin.Context) {
	userID, role, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID, role)
	if err != nil {
		writeError(c, err, "Authentication check failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func writeError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", verr.Fields)
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
