package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const CookieName = "token"

// Cookie writes and reads the session token cookie. The cookie is always
// HttpOnly, SameSite=Strict and scoped to "/".
type Cookie struct {
	maxAge int
	secure bool
}

func NewCookie(ttl time.Duration, secure bool) *Cookie {
	return &Cookie{maxAge: int(ttl / time.Second), secure: secure}
}

func (s *Cookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, token, s.maxAge, "/", "", s.secure, true)
}

// Clear expires the cookie on the client. Tokens already issued stay valid
// until their own expiry.
func (s *Cookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", "", s.secure, true)
}

func (s *Cookie) Read(c *gin.Context) (string, bool) {
	v, err := c.Cookie(CookieName)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
