package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/internal/service/chat"
	"github.com/jzq1291/chatbot/internal/service/knowledge"
	"github.com/jzq1291/chatbot/pkg/log"
)

type handler struct {
	chat      *chat.Service
	knowledge *knowledge.Service
}

// POST /ai/chat
func (h *handler) sendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	var req chat.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.chat.SendMessage(ctx, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidModel) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		log.FromCtx(ctx).Error().Err(err).Msg("chat turn failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to process message"})
	}

	return c.JSON(http.StatusOK, result)
}

// POST /ai/chat/stream
func (h *handler) streamMessage(c echo.Context) error {
	ctx := c.Request().Context()

	var req chat.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	h.chat.StreamMessage(ctx, req, newSSESink(c.Response()))
	return nil
}

// GET /ai/chat/history/:sessionId
func (h *handler) history(c echo.Context) error {
	ctx := c.Request().Context()

	history, err := h.chat.History(ctx, c.Param("sessionId"))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load history")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load history"})
	}
	if history == nil {
		history = []core.Message{}
	}
	return c.JSON(http.StatusOK, history)
}

// GET /ai/chat/sessions
func (h *handler) sessions(c echo.Context) error {
	ctx := c.Request().Context()

	ids, err := h.chat.Sessions(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to list sessions")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list sessions"})
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, ids)
}

// DELETE /ai/chat/session/:sessionId
func (h *handler) deleteSession(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.chat.DeleteSession(ctx, c.Param("sessionId")); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to delete session")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete session"})
	}
	return c.NoContent(http.StatusNoContent)
}
