package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parvarish/internal/pkg/jwt"
	"parvarish/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAccessRouter(t *testing.T, svc *jwt.Service) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(Access(DefaultPolicy(), svc, session.NewCookie(time.Hour, false)))

	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserID),
			"role":    c.GetString(CtxRole),
		})
	}
	for _, p := range []string{
		"/", "/auth/login", "/api/auth/login", "/api/public/schedules",
		"/api/daycares", "/api/daycares/:id", "/health", "/health/ready",
		"/api/bookings", "/dashboard", "/daycare/dashboard", "/booking/new",
	} {
		router.GET(p, ok)
	}
	return router
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	router.ServeHTTP(w, req)
	return w
}

func TestPolicy_Classify(t *testing.T) {
	p := DefaultPolicy()
	cases := map[string]RouteClass{
		"/":                     RoutePublic,
		"/auth/login":           RoutePublic,
		"/api/daycare/register": RoutePublic,
		"/api/public/anything":  RoutePublic,
		"/api/daycares":         RoutePublic,
		"/api/daycares/123":     RoutePublic,
		"/health/ready":         RoutePublic,
		"/metrics":              RoutePublic,
		"/dashboard":            RouteParentOnly,
		"/daycare/search":       RouteParentOnly,
		"/booking/new":          RouteParentOnly,
		"/daycare/dashboard":    RouteDaycareOnly,
		"/api/bookings":         RouteAuthenticated,
		"/api/auth/check":       RouteAuthenticated,
		"/api/publicity":        RouteAuthenticated,
		"/dashboards":           RouteAuthenticated,
	}
	for path, want := range cases {
		assert.Equal(t, want, p.Classify(path), path)
	}
}

func TestAccess_PublicRoutesPassWithoutToken(t *testing.T) {
	router := newAccessRouter(t, jwt.New("secret", time.Hour))
	for _, p := range []string{"/", "/auth/login", "/api/auth/login", "/api/public/schedules", "/api/daycares", "/api/daycares/x", "/health/ready"} {
		w := doGet(router, p, "")
		assert.Equal(t, http.StatusOK, w.Code, p)
	}
}

func TestAccess_PublicRouteIgnoresBadCookie(t *testing.T) {
	router := newAccessRouter(t, jwt.New("secret", time.Hour))
	w := doGet(router, "/api/daycares", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAccess_NoToken(t *testing.T) {
	router := newAccessRouter(t, jwt.New("secret", time.Hour))

	w := doGet(router, "/api/bookings", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Unauthorized"`)

	w = doGet(router, "/dashboard", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestAccess_InvalidTokenClearsCookie(t *testing.T) {
	router := newAccessRouter(t, jwt.New("secret", time.Hour))
	forged, err := jwt.New("other", time.Hour).GenerateToken("u1", "a@b.com", "parent")
	require.NoError(t, err)

	w := doGet(router, "/api/bookings", forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	require.Len(t, w.Result().Cookies(), 1)
	assert.Less(t, w.Result().Cookies()[0].MaxAge, 0)

	w = doGet(router, "/dashboard", forged)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
	require.Len(t, w.Result().Cookies(), 1)
}

func TestAccess_RoleMismatchRedirectsHome(t *testing.T) {
	svc := jwt.New("secret", time.Hour)
	router := newAccessRouter(t, svc)

	parentTok, err := svc.GenerateToken("p1", "p@x.com", "parent")
	require.NoError(t, err)
	daycareTok, err := svc.GenerateToken("d1", "d@x.com", "daycare")
	require.NoError(t, err)

	w := doGet(router, "/daycare/dashboard", parentTok)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = doGet(router, "/booking/new", daycareTok)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/daycare/dashboard", w.Header().Get("Location"))

	w = doGet(router, "/dashboard", parentTok)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(router, "/daycare/dashboard", daycareTok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccess_SetsIdentity(t *testing.T) {
	svc := jwt.New("secret", time.Hour)
	router := newAccessRouter(t, svc)
	tok, err := svc.GenerateToken("d1", "d@x.com", "daycare")
	require.NoError(t, err)

	w := doGet(router, "/api/bookings", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"d1","role":"daycare"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	svc := jwt.New("secret", time.Hour)
	router := gin.New()
	router.Use(Access(DefaultPolicy(), svc, session.NewCookie(time.Hour, false)))
	router.POST("/api/bookings", RequireRole("parent"), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	daycareTok, err := svc.GenerateToken("d1", "d@x.com", "daycare")
	require.NoError(t, err)
	parentTok, err := svc.GenerateToken("p1", "p@x.com", "parent")
	require.NoError(t, err)

	for tok, want := range map[string]int{daycareTok: http.StatusForbidden, parentTok: http.StatusCreated} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}
