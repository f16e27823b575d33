package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/gymcoach/internal/domain/chat"
	"github.com/yungbote/gymcoach/internal/gateway"
	httpMW "github.com/yungbote/gymcoach/internal/http/middleware"
	"github.com/yungbote/gymcoach/internal/http/response"
	"github.com/yungbote/gymcoach/internal/platform/logger"
)

type ChatHandler struct {
	log *logger.Logger
}

func NewChatHandler(log *logger.Logger) *ChatHandler {
	return &ChatHandler{log: log.With("handler", "ChatHandler")}
}

type chatView struct {
	Messages []chat.Message `json:"messages"`
	Loading  bool           `json:"loading"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type sendMessageResponse struct {
	Reply    chat.Message   `json:"reply"`
	Messages []chat.Message `json:"messages"`
}

// GET /api/chat/messages
func (h *ChatHandler) List(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	response.RespondOK(c, chatView{Messages: s.Chat.Messages(), Loading: s.Chat.Loading()})
}

// POST /api/chat/messages
func (h *ChatHandler) Send(c *gin.Context) {
	s := httpMW.SessionFrom(c)
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	reply, ok := s.SendChat(c.Request.Context(), req.Message)
	if !ok {
		respondErr(c, &gateway.InvalidInputError{Field: "message", Reason: "message is empty"})
		return
	}
	response.RespondOK(c, sendMessageResponse{Reply: reply, Messages: s.Chat.Messages()})
}

// DELETE /api/chat/messages
func (h *ChatHandler) Clear(c *gin.Context) {
	httpMW.SessionFrom(c).Chat.Clear()
	c.Status(http.StatusNoContent)
}
