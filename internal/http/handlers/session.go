package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	httpMW "github.com/yungbote/gymcoach/internal/http/middleware"
	"github.com/yungbote/gymcoach/internal/http/response"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/session"
)

type SessionHandler struct {
	log      *logger.Logger
	registry *session.Registry
}

func NewSessionHandler(log *logger.Logger, registry *session.Registry) *SessionHandler {
	return &SessionHandler{
		log:      log.With("handler", "SessionHandler"),
		registry: registry,
	}
}

type sessionView struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// POST /api/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.registry.Create()
	c.Header(httpMW.HeaderSessionID, s.ID)
	response.RespondCreated(c, sessionView{ID: s.ID, CreatedAt: s.CreatedAt})
}

// DELETE /api/sessions
func (h *SessionHandler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.GetHeader(httpMW.HeaderSessionID))
	if !h.registry.Delete(id) {
		respondErr(c, session.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
