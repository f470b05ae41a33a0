package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jzq1291/chatbot/internal/config"
	"github.com/jzq1291/chatbot/internal/core"
)

// memStore is an in-memory MessagesRepository matching the contract of the
// sqlite implementation: Recent returns newest first, All oldest first.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	messages []core.StoredMessage

	appendErr map[core.Role]error
}

func newMemStore() *memStore {
	return &memStore{appendErr: make(map[core.Role]error)}
}

func (s *memStore) Append(ctx context.Context, sessionID string, role core.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendErr[role]; err != nil {
		return err
	}
	s.nextID++
	s.messages = append(s.messages, core.StoredMessage{
		ID:        s.nextID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *memStore) Recent(ctx context.Context, sessionID string, limit int) ([]core.StoredMessage, error) {
	all := s.bySession(sessionID)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	// newest first
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

func (s *memStore) All(ctx context.Context, sessionID string) ([]core.StoredMessage, error) {
	return s.bySession(sessionID), nil
}

func (s *memStore) SessionIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var ids []string
	for _, msg := range s.messages {
		if !seen[msg.SessionID] {
			seen[msg.SessionID] = true
			ids = append(ids, msg.SessionID)
		}
	}
	return ids, nil
}

func (s *memStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.messages[:0]
	for _, msg := range s.messages {
		if msg.SessionID != sessionID {
			kept = append(kept, msg)
		}
	}
	s.messages = kept
	return nil
}

func (s *memStore) bySession(sessionID string) []core.StoredMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.StoredMessage
	for _, msg := range s.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out
}

// fakeKnowledge serves documents whose title or content contains the query
// as a substring, mirroring the repository semantics.
type fakeKnowledge struct {
	docs []core.KnowledgeDoc
	err  error
}

func (k *fakeKnowledge) Search(ctx context.Context, keyword string) ([]core.KnowledgeDoc, error) {
	if k.err != nil {
		return nil, k.err
	}
	var hits []core.KnowledgeDoc
	for _, doc := range k.docs {
		if strings.Contains(strings.ToLower(doc.Title), strings.ToLower(keyword)) ||
			strings.Contains(strings.ToLower(doc.Content), strings.ToLower(keyword)) {
			hits = append(hits, doc)
		}
	}
	return hits, nil
}

// fakeProvider returns a canned reply and records the context window it was
// handed.
type fakeProvider struct {
	reply string
	err   error

	mu         sync.Mutex
	lastWindow []core.Message
}

func (p *fakeProvider) Complete(ctx context.Context, messages []core.Message) (string, error) {
	p.mu.Lock()
	p.lastWindow = messages
	p.mu.Unlock()

	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

// recordingSink collects stream events and can be told to fail from the
// nth send on.
type recordingSink struct {
	events   []core.StreamEvent
	failFrom int // 1-based send index; 0 means never fail
	sends    int
}

var errSinkClosed = errors.New("receiver gone")

func (s *recordingSink) Send(event core.StreamEvent) error {
	s.sends++
	if s.failFrom > 0 && s.sends >= s.failFrom {
		return errSinkClosed
	}
	s.events = append(s.events, event)
	return nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		HistoryWindow:   10,
		SystemPrompt:    config.DefaultSystemPrompt,
		StreamChunkSize: 1,
		StreamDelay:     0,
	}
}

const testModel = "qwen3"

func newTestService(store *memStore, know *fakeKnowledge, provider *fakeProvider) *Service {
	return NewService(
		testConfig(),
		store,
		know,
		map[string]core.CompletionProvider{testModel: provider},
		testModel,
	)
}
