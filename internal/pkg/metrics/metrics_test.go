package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddleware_CountsRequests(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/daycares/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", m.Handler())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/daycares/abc", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/daycares/:id", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "parvarish_http_requests_total"))
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.RegistrationCompleted("parent")
	m.RegistrationCompleted("parent")
	m.BookingCreated()
	m.BookingStatusChanged("approved")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues("parent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("approved")))
}
