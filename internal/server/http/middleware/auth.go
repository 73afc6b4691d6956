package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/server/http/dto"
)

const (
	// ActorContextKey is a gin context key for the authenticated actor.
	ActorContextKey = "actor"
	// SessionCookieName names the cookie carrying the signed session id.
	SessionCookieName = "thermopolio_session"
)

// SessionResolver turns a signed session token into the acting user.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (model.Actor, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Autenticazione richiesta"))
			return
		}

		actor, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Sessione non valida o scaduta"))
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Errore interno del server"))
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// RequireRole rejects actors whose user type is not listed. It must run after AuthRequired.
func RequireRole(roles ...model.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := c.Get(ActorContextKey)
		a, ok := actor.(model.Actor)
		if !ok || !a.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Autenticazione richiesta"))
			return
		}
		if !slices.Contains(roles, a.UserType) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Operazione non consentita"))
			return
		}
		c.Next()
	}
}

// SessionCookie writes and clears the session cookie.
type SessionCookie struct {
	MaxAge time.Duration
	Secure bool
}

// Set writes the session token cookie to response.
func (s SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(s.MaxAge.Seconds()), "/", "", s.Secure, true)
}

// Clear expires the session cookie.
func (s SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", s.Secure, true)
}

// Token returns the raw session cookie value, if any.
func Token(c *gin.Context) string {
	token, _ := c.Cookie(SessionCookieName)
	return token
}
