package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func serve(h *Handler, path string) (*httptest.ResponseRecorder, Response) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestLive(t *testing.T) {
	w, resp := serve(NewHandler(nil, ""), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, "unknown", resp.Version)
}

func TestReady(t *testing.T) {
	w, resp := serve(NewHandler(fakePinger{}, "1.0.0"), "/health/ready")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UP", resp.Checks["database"].Status)

	w, resp = serve(NewHandler(fakePinger{err: errors.New("down")}, "1.0.0"), "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "DOWN", resp.Status)

	w, _ = serve(NewHandler(nil, "1.0.0"), "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
