package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// SessionCookieName cookie carrying the signed session id
	SessionCookieName = "od_session"

	sessionIDKey   = "session_id"
	sessionIDField = "sid"
)

// SessionOptions cookie settings
type SessionOptions struct {
	Secret string
	TTL    time.Duration
	Secure bool
}

// Session installs the signed cookie store and makes sure every request has
// a session id. Only the id lives in the cookie; form state is kept
// server-side.
func Session(opts SessionOptions, logger *zap.Logger) []gin.HandlerFunc {
	store := cookie.NewStore([]byte(opts.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return []gin.HandlerFunc{
		sessions.Sessions(SessionCookieName, store),
		ensureSessionID(logger),
	}
}

func ensureSessionID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		sid, _ := s.Get(sessionIDField).(string)
		if sid == "" {
			sid = uuid.NewString()
			s.Set(sessionIDField, sid)
			if err := s.Save(); err != nil {
				logger.Warn("failed to save session cookie", zap.Error(err))
			}
		}
		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// GetSessionID returns the id set by Session, or ""
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
