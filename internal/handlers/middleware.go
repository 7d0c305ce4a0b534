package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys and session transport names.
const (
	ctxUsername  = "username"
	ctxSessionID = "sessionId"

	sessionCookie = "microwave_session"
	sessionHeader = "X-Session-ID"

	maxSessionIDLen = 128
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The second return value is false when the header is malformed.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func (h *Handler) userIdentity(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	token, ok := bearerToken(header)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	username, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUsername, username)
	c.Next()
}

// sessionMiddleware resolves the heating session of the caller. The header
// wins over the cookie; a fresh id is issued when neither is usable.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	id := strings.TrimSpace(c.GetHeader(sessionHeader))
	if id == "" {
		if v, err := c.Cookie(sessionCookie); err == nil {
			id = strings.TrimSpace(v)
		}
	}
	if id == "" || len(id) > maxSessionIDLen {
		id = uuid.NewString()
		if h.log != nil {
			h.log.Debugw("session_issued", "session_id", id)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	c.Header(sessionHeader, id)
	c.Set(ctxSessionID, id)
	c.Next()
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
