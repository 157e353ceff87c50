package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memberchat/member-service/internal/api/metrics"
	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

// ChatHandler handles HTTP requests for the shared chat room.
type ChatHandler struct {
	chat ports.ChatService
}

func NewChatHandler(chat ports.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type postMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type authorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type messageResponse struct {
	ID        string         `json:"id"`
	Author    authorResponse `json:"author"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
}

func toMessageResponse(m *domain.ChatMessage) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Author:    authorResponse{ID: m.AuthorID, Username: m.AuthorUsername},
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

// List returns the most recent messages, newest first.
//
// @Summary      List chat messages
// @Tags         chat
// @Produce      json
// @Security     TokenAuth
// @Param        limit  query     int  false  "Maximum number of messages (default 50, max 200)"
// @Success      200    {array}   messageResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/chat/messages [get]
func (h *ChatHandler) List(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}

	msgs, err := h.chat.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	resp := make([]messageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, toMessageResponse(&msgs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create posts a message as the caller.
//
// @Summary      Post a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      postMessageRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/chat/messages [post]
func (h *ChatHandler) Create(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.chat.Post(c.Request().Context(), account, req.Text)
	if err != nil {
		return err
	}

	metrics.ChatMessagesPostedTotal.Inc()
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}
