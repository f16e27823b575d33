package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gymcoach/internal/domain/profile"
	httpMW "github.com/yungbote/gymcoach/internal/http/middleware"
	"github.com/yungbote/gymcoach/internal/http/response"
	"github.com/yungbote/gymcoach/internal/platform/logger"
)

type ProfileHandler struct {
	log *logger.Logger
}

func NewProfileHandler(log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{log: log.With("handler", "ProfileHandler")}
}

type profileView struct {
	Profile *profile.UserProfile `json:"profile"`
}

// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	response.RespondOK(c, profileView{Profile: s.Profile.Get()})
}

// PUT /api/profile
func (h *ProfileHandler) Put(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	var d profile.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	p, err := s.SaveProfile(d)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, profileView{Profile: &p})
}

// DELETE /api/profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	httpMW.SessionFrom(c).Profile.Clear()
	c.Status(http.StatusNoContent)
}
