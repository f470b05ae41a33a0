package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jzq1291/chatbot/internal/config"
	"github.com/jzq1291/chatbot/internal/service/chat"
	"github.com/jzq1291/chatbot/internal/service/knowledge"
	"github.com/jzq1291/chatbot/pkg/log"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the chat and knowledge services over HTTP. It implements
// srv.Service so it participates in the process lifecycle.
type Server struct {
	cfg  *config.ServerConfig
	echo *echo.Echo
}

func NewServer(ctx context.Context, cfg *config.ServerConfig, chatSvc *chat.Service, knowSvc *knowledge.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Propagate the process logger into request contexts.
	logger := log.FromCtx(ctx)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
			return next(c)
		}
	})

	h := &handler{chat: chatSvc, knowledge: knowSvc}

	g := e.Group("/ai")
	g.POST("/chat", h.sendMessage)
	g.POST("/chat/stream", h.streamMessage)
	g.GET("/chat/history/:sessionId", h.history)
	g.GET("/chat/sessions", h.sessions)
	g.DELETE("/chat/session/:sessionId", h.deleteSession)

	g.POST("/knowledge", h.addKnowledge)
	g.PUT("/knowledge/:id", h.updateKnowledge)
	g.DELETE("/knowledge/:id", h.deleteKnowledge)
	g.GET("/knowledge/search", h.searchKnowledge)
	g.GET("/knowledge", h.knowledgeByCategory)

	return &Server{cfg: cfg, echo: e}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.ListenAddr).Msg("http server listening")
	if err := s.echo.Start(s.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	// The lifecycle ctx is already done at this point.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
