package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 5 * time.Second

// Pinger is satisfied by *database.Provider.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db        Pinger
	startTime time.Time
	version   string
}

func NewHandler(db Pinger, version string) *Handler {
	if version == "" {
		version = "unknown"
	}
	return &Handler{db: db, startTime: time.Now(), version: version}
}

type Response struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Live)
	r.GET("/health/ready", h.Ready)
}

// Live confirms the process is serving requests.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, h.response("UP", map[string]Check{"process": {Status: "UP"}}))
}

// Ready reports DOWN with 503 until the database answers a ping.
func (h *Handler) Ready(c *gin.Context) {
	dbCheck := h.checkDatabase(c.Request.Context())

	status, code := "UP", http.StatusOK
	if dbCheck.Status != "UP" {
		status, code = "DOWN", http.StatusServiceUnavailable
	}
	c.JSON(code, h.response(status, map[string]Check{"database": dbCheck}))
}

func (h *Handler) response(status string, checks map[string]Check) Response {
	return Response{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}
}

func (h *Handler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: "DOWN", Message: "Database connection is not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return Check{Status: "DOWN", Message: "Cannot connect to database"}
	}
	return Check{Status: "UP"}
}
