package handlers

import (
	"net/http"

	"github.com/fez-github/Doom-Mod-Records/internal/models"
	"github.com/fez-github/Doom-Mod-Records/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserKey = "user_id"
	ctxUserKey     = "current_user"
	rememberCookie = "remember_token"
)

// CurrentUser resolves the caller's identity once per request and
// attaches it to the gin context. Order of precedence: server-side
// session, then the remember-me cookie (which re-binds the session).
// Neither present means the request stays anonymous.
func (h *Handler) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		if idVal := session.Get(sessionUserKey); idVal != nil {
			if id, ok := idVal.(uint); ok {
				if user, err := h.accountService.Get(id); err == nil {
					c.Set(ctxUserKey, user)
					c.Next()
					return
				}
				// Stale session pointing at a deleted user.
				session.Delete(sessionUserKey)
				session.Save()
			}
		}

		if token, err := c.Cookie(rememberCookie); err == nil {
			if user, err := h.accountService.FindByRememberToken(token); err == nil {
				session.Set(sessionUserKey, user.ID)
				session.Save()
				c.Set(ctxUserKey, user)
			}
		}

		c.Next()
	}
}

// currentUser returns the identity resolved by CurrentUser, or nil for
// an anonymous request.
func currentUser(c *gin.Context) *models.User {
	if val, exists := c.Get(ctxUserKey); exists {
		if user, ok := val.(*models.User); ok {
			return user
		}
	}
	return nil
}

// AuthRequired gates JSON API routes. Page routes handle their own
// auth so they can flash and redirect like the rest of the site.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "Unauthorized access."})
			return
		}
		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// flash queues a one-shot message for the next rendered page.
func flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	session.Save()
}

// takeFlashes drains queued flash messages for rendering.
func takeFlashes(c *gin.Context) []interface{} {
	session := sessions.Default(c)
	messages := session.Flashes()
	if len(messages) > 0 {
		session.Save()
	}
	return messages
}
