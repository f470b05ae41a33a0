package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jzq1291/chatbot/internal/config"
	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/pkg/log"
)

// MessagesRepository is the slice of the message store the chat service
// depends on.
type MessagesRepository interface {
	Append(ctx context.Context, sessionID string, role core.Role, content string) error
	Recent(ctx context.Context, sessionID string, limit int) ([]core.StoredMessage, error)
	All(ctx context.Context, sessionID string) ([]core.StoredMessage, error)
	SessionIDs(ctx context.Context) ([]string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// KnowledgeSearcher provides keyword lookup for retrieval augmentation.
type KnowledgeSearcher interface {
	Search(ctx context.Context, keyword string) ([]core.KnowledgeDoc, error)
}

// Service coordinates one conversation turn: session identity, context
// assembly, model invocation, and persistence of both sides of the turn.
type Service struct {
	cfg          *config.AppConfig
	messages     MessagesRepository
	knowledge    KnowledgeSearcher
	providers    map[string]core.CompletionProvider
	defaultModel string
}

func NewService(
	cfg *config.AppConfig,
	messages MessagesRepository,
	knowledge KnowledgeSearcher,
	providers map[string]core.CompletionProvider,
	defaultModel string,
) *Service {
	return &Service{
		cfg:          cfg,
		messages:     messages,
		knowledge:    knowledge,
		providers:    providers,
		defaultModel: defaultModel,
	}
}

type Request struct {
	SessionID string `json:"sessionId"`
	ModelID   string `json:"modelId"`
	Text      string `json:"message"`
}

type Result struct {
	Reply     string `json:"message"`
	SessionID string `json:"sessionId"`
	ModelID   string `json:"modelId"`
}

// SendMessage handles one synchronous turn. The sanitized user message is
// durable before the model is called, so a generation failure loses the
// reply for this turn only, never the conversation.
func (s *Service) SendMessage(ctx context.Context, req Request) (Result, error) {
	sessionID := resolveSessionID(req.SessionID)
	modelID, provider, err := s.resolveModel(req.ModelID)
	if err != nil {
		return Result{}, err
	}

	text := CleanInput(req.Text)

	window, err := s.buildContext(ctx, sessionID, text)
	if err != nil {
		return Result{}, err
	}

	if err := s.messages.Append(ctx, sessionID, core.RoleUser, text); err != nil {
		return Result{}, fmt.Errorf("failed to save user message: %w", err)
	}

	reply, err := provider.Complete(ctx, window)
	if err != nil {
		return Result{}, fmt.Errorf("completion failed: %w", err)
	}
	reply = StripReasoning(reply)

	if err := s.messages.Append(ctx, sessionID, core.RoleAssistant, reply); err != nil {
		return Result{}, fmt.Errorf("failed to save assistant message: %w", err)
	}

	log.FromCtx(ctx).Info().
		Str("session", sessionID).
		Str("model", modelID).
		Int("reply_len", len(reply)).
		Msg("turn completed")

	return Result{Reply: reply, SessionID: sessionID, ModelID: modelID}, nil
}

// History returns the full chronological replay of a session. An unknown
// session yields an empty history, not an error.
func (s *Service) History(ctx context.Context, sessionID string) ([]core.Message, error) {
	stored, err := s.messages.All(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	history := make([]core.Message, 0, len(stored))
	for _, msg := range stored {
		history = append(history, core.Message{Role: msg.Role, Content: msg.Content})
	}
	return history, nil
}

func (s *Service) Sessions(ctx context.Context) ([]string, error) {
	ids, err := s.messages.SessionIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// DeleteSession removes every message of the session. Idempotent.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	return s.messages.DeleteSession(ctx, sessionID)
}

func (s *Service) resolveModel(modelID string) (string, core.CompletionProvider, error) {
	if modelID == "" {
		modelID = s.defaultModel
	}
	provider, ok := s.providers[modelID]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", core.ErrInvalidModel, modelID)
	}
	return modelID, provider, nil
}

func resolveSessionID(sessionID string) string {
	if sessionID == "" {
		return uuid.NewString()
	}
	return sessionID
}
