package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gymcoach/internal/http/response"
	"github.com/yungbote/gymcoach/internal/platform/ctxutil"
	"github.com/yungbote/gymcoach/internal/session"
)

const (
	HeaderSessionID = "X-Session-Id"
	sessionKey      = "coach_session"
)

// SessionLookup is satisfied by *session.Registry.
type SessionLookup interface {
	Get(id string) (*session.Session, error)
}

// RequireSession resolves the X-Session-Id header to a live session.
func RequireSession(reg SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderSessionID))
		if id == "" {
			response.RespondError(c, http.StatusBadRequest, "session_required", errMissingSession)
			c.Abort()
			return
		}
		s, err := reg.Get(id)
		if err != nil {
			response.RespondError(c, http.StatusNotFound, "session_not_found", err)
			c.Abort()
			return
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			td.SessionID = s.ID
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// SessionFrom returns the session RequireSession attached.
func SessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

type sessionError string

func (e sessionError) Error() string { return string(e) }

const errMissingSession = sessionError("missing " + HeaderSessionID + " header")
