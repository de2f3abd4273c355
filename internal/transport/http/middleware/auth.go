package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	customErrors "github.com/clipshare/clipshare/internal/auth/errors"
	"github.com/clipshare/clipshare/internal/auth/service"
)

// UserIDKey is where the gate stores the resolved user id for downstream
// handlers. The id comes from the verified claim and is not re-read from the
// database per request.
const UserIDKey = "user_id"

// BearerToken enforces the exact `Bearer <token>` header shape: case-sensitive
// prefix, single space, non-empty token. Anything else is malformed.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := header[len(prefix):]
	if token == "" || strings.ContainsRune(token, ' ') {
		return "", false
	}
	return token, true
}

// Auth is the gate every protected route passes through. All authentication
// failures surface as the same 401 so a caller cannot tell which check failed.
func Auth(svc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing or invalid authorization header"})
			return
		}

		userID, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if customErrors.IsInternal(err) {
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID reads the gate-resolved identity out of the request context.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
