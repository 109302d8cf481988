package middleware

import (
	"net/http"
	"strings"

	"parvarish/internal/domain"
	"parvarish/internal/pkg/jwt"
	"parvarish/internal/pkg/response"
	"parvarish/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"

	LoginPath = "/auth/login"
)

type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAuthenticated
	RouteParentOnly
	RouteDaycareOnly
)

// Policy classifies request paths. Role-only classes apply to HTML pages;
// role rules for API actions live in the services.
type Policy struct {
	public         map[string]struct{}
	publicPrefixes []string
	parentOnly     []string
	daycareOnly    []string
}

func DefaultPolicy() *Policy {
	return &Policy{
		public: toSet(
			"/",
			"/auth/login",
			"/auth/register",
			"/daycare/register",
			"/api/auth/login",
			"/api/auth/register",
			"/api/daycare/register",
			"/api/daycares",
			"/health",
			"/metrics",
		),
		publicPrefixes: []string{
			"/api/public/",
			"/api/daycares/",
			"/health/",
		},
		parentOnly:  []string{"/dashboard", "/daycare/search", "/booking/new"},
		daycareOnly: []string{"/daycare/dashboard"},
	}
}

func (p *Policy) Classify(path string) RouteClass {
	if _, ok := p.public[path]; ok {
		return RoutePublic
	}
	for _, prefix := range p.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return RoutePublic
		}
	}
	if matchesAny(path, p.parentOnly) {
		return RouteParentOnly
	}
	if matchesAny(path, p.daycareOnly) {
		return RouteDaycareOnly
	}
	return RouteAuthenticated
}

// TokenVerifier is satisfied by *jwt.Service.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Access enforces the route policy using the session cookie. API routes
// answer 401 JSON, page routes redirect to the login page.
func Access(policy *Policy, verifier TokenVerifier, cookie *session.Cookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		class := policy.Classify(path)
		if class == RoutePublic {
			c.Next()
			return
		}

		api := isAPI(path)

		token, ok := cookie.Read(c)
		if !ok {
			if api {
				response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
				return
			}
			redirect(c, LoginPath)
			return
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			log.Debug().Str("path", path).Msg("rejected session token")
			cookie.Clear(c)
			if api {
				response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired session")
				return
			}
			redirect(c, LoginPath)
			return
		}

		role := domain.ParseRole(claims.Role)
		switch {
		case class == RouteParentOnly && role != domain.RoleParent,
			class == RouteDaycareOnly && role != domain.RoleDaycare:
			redirect(c, role.HomePath())
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, string(role))
		c.Next()
	}
}

// Identity reads what Access stored on the context.
func Identity(c *gin.Context) (userID string, role domain.UserRole, ok bool) {
	userID = c.GetString(CtxUserID)
	if userID == "" {
		return "", "", false
	}
	return userID, domain.UserRole(c.GetString(CtxRole)), true
}

func isAPI(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusFound, to)
	c.Abort()
}

func matchesAny(path string, routes []string) bool {
	for _, r := range routes {
		if path == r || strings.HasPrefix(path, r+"/") {
			return true
		}
	}
	return false
}

func toSet(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}
