package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/pkg/log"
)

// buildContext assembles the model context window for one turn: the system
// prompt, the bounded chronological history, and the new user entry, which
// carries matching knowledge-base content when the search finds any.
func (s *Service) buildContext(ctx context.Context, sessionID, userText string) ([]core.Message, error) {
	docs, err := s.knowledge.Search(ctx, userText)
	if err != nil {
		return nil, fmt.Errorf("knowledge search failed: %w", err)
	}

	entry := userText
	if len(docs) > 0 {
		entry = userText + "\n\n" + formatDocs(docs)
		log.FromCtx(ctx).Debug().Int("docs", len(docs)).Msg("augmented user turn with knowledge")
	}

	recent, err := s.messages.Recent(ctx, sessionID, s.cfg.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	// The store returns newest first; restore chronological order.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	window := make([]core.Message, 0, len(recent)+2)
	window = append(window, core.Message{Role: core.RoleSystem, Content: s.cfg.SystemPrompt})
	for _, msg := range recent {
		window = append(window, core.Message{Role: msg.Role, Content: msg.Content})
	}
	window = append(window, core.Message{Role: core.RoleUser, Content: entry})

	return window, nil
}

func formatDocs(docs []core.KnowledgeDoc) string {
	var b strings.Builder
	b.WriteString("Relevant documents:\n")
	for _, doc := range docs {
		b.WriteString("Title: ")
		b.WriteString(doc.Title)
		b.WriteString("\nContent: ")
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
