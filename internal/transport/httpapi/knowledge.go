package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/pkg/log"
)

// POST /ai/knowledge
func (h *handler) addKnowledge(c echo.Context) error {
	ctx := c.Request().Context()

	var doc core.KnowledgeDoc
	if err := c.Bind(&doc); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	saved, err := h.knowledge.Add(ctx, doc)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to add knowledge entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to add knowledge entry"})
	}
	return c.JSON(http.StatusCreated, saved)
}

// PUT /ai/knowledge/:id
func (h *handler) updateKnowledge(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	var doc core.KnowledgeDoc
	if err := c.Bind(&doc); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	doc.ID = id

	if err := h.knowledge.Update(ctx, doc); err != nil {
		if errors.Is(err, core.ErrKnowledgeNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "knowledge entry not found"})
		}
		log.FromCtx(ctx).Error().Err(err).Msg("failed to update knowledge entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update knowledge entry"})
	}
	return c.JSON(http.StatusOK, doc)
}

// DELETE /ai/knowledge/:id
func (h *handler) deleteKnowledge(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	if err := h.knowledge.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrKnowledgeNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "knowledge entry not found"})
		}
		log.FromCtx(ctx).Error().Err(err).Msg("failed to delete knowledge entry")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete knowledge entry"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /ai/knowledge/search?keyword=
func (h *handler) searchKnowledge(c echo.Context) error {
	ctx := c.Request().Context()

	docs, err := h.knowledge.Search(ctx, c.QueryParam("keyword"))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("knowledge search failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "knowledge search failed"})
	}
	if docs == nil {
		docs = []core.KnowledgeDoc{}
	}
	return c.JSON(http.StatusOK, docs)
}

// GET /ai/knowledge?category=
func (h *handler) knowledgeByCategory(c echo.Context) error {
	ctx := c.Request().Context()

	docs, err := h.knowledge.ByCategory(ctx, c.QueryParam("category"))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("knowledge category query failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "knowledge category query failed"})
	}
	if docs == nil {
		docs = []core.KnowledgeDoc{}
	}
	return c.JSON(http.StatusOK, docs)
}
