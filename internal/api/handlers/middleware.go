// internal/api/handlers/middleware.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"dre-service/internal/api/responses"
	"dre-service/internal/core/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionKey      = "session"
	requestIDHeader = "X-Request-ID"
)

// RequestLogger registra cada requisição com um identificador próprio.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		c.Next()

		logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// RequireSession bloqueia quem não tem sessão válida. Páginas redirecionam para o
// login; a API responde 401.
func RequireSession(service auth.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := service.Session(sessionToken(c, cookieName))
		if !session.Authenticated {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				responses.Error(c, http.StatusUnauthorized, "Sessão inválida ou ausente")
				c.Abort()
				return
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// sessionToken lê o token do cookie ou do cabeçalho Authorization.
func sessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func currentSession(c *gin.Context) auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if session, ok := v.(auth.Session); ok {
			return session
		}
	}
	return auth.Session{}
}
