package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskdeck/taskdeck/pkg/helpers"
	"github.com/taskdeck/taskdeck/pkg/response"
)

// CtxUserIDKey is the only legitimate source of "current user" for task
// handlers. Never read an owner id from a path, query or body.
const CtxUserIDKey = "userID"

// TokenExtractor locates a token in a request. Returns "" when the request
// carries none in the transport it understands.
type TokenExtractor interface {
	Extract(c *gin.Context) string
}

// CookieExtractor reads the httpOnly access token cookie (canonical
// transport for browser clients).
type CookieExtractor struct{}

func (CookieExtractor) Extract(c *gin.Context) string {
	token, err := c.Cookie(helpers.AccessTokenCookie)
	if err != nil {
		return ""
	}
	return token
}

// BearerExtractor reads an Authorization: Bearer header (fallback for
// cross-origin clients that cannot rely on cookies).
type BearerExtractor struct{}

func (BearerExtractor) Extract(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// Auth resolves the caller's identity from the first extractor that yields a
// token and injects it into the Gin context. Missing, malformed and expired
// tokens all answer the same generic 401 so token internals never leak.
func Auth(jwt *helpers.JWTManager, extractors ...TokenExtractor) gin.HandlerFunc {
	if len(extractors) == 0 {
		extractors = []TokenExtractor{CookieExtractor{}, BearerExtractor{}}
	}
	return func(c *gin.Context) {
		var token string
		for _, e := range extractors {
			if token = e.Extract(c); token != "" {
				break
			}
		}
		if token == "" {
			response.AbortErr(c, http.StatusUnauthorized, "Please log in to continue", response.CodeUnauthorized)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "Please log in to continue", response.CodeUnauthorized)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the resolved identity set by Auth, or "" when unset.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
