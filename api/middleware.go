package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const sessionKey = "session"

// Sessions resolves a bearer token to a live session.
type Sessions interface {
	Session(ctx context.Context, token string) (*domain.Session, error)
	UpdateSession(ctx context.Context, token string) (*domain.Session, error)
}

// Logger logs one line per request, at a level picked from the status.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Error("server error", fields...)
		case status >= 400:
			log.Warn("client error", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}

func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	})
}

// RateLimit applies one shared token bucket to every request.
func RateLimit(limit float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	})
}

// Auth builds the guards that protect user and admin routes.
type Auth struct {
	sessions Sessions
}

func NewAuth(sessions Sessions) *Auth {
	return &Auth{sessions: sessions}
}

// RequireUser rejects requests without a live session. Every authenticated
// request counts as activity and slides the idle deadline.
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		sess, err := a.sessions.UpdateSession(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireAdmin must run after RequireUser.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess == nil || sess.User.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "admin role required"})
			return
		}
		c.Next()
	}
}

// Optional attaches the session when a valid token is present and lets
// anonymous requests through.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearer(c); token != "" {
			if sess, err := a.sessions.Session(c.Request.Context(), token); err == nil {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func currentSession(c *gin.Context) *domain.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*domain.Session)
	return sess
}
