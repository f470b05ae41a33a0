package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzq1291/chatbot/internal/core"
)

func TestSendMessage_NewSessionGetsID(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	provider := &fakeProvider{reply: "Hi, how can I help?"}
	svc := newTestService(store, &fakeKnowledge{}, provider)

	result, err := svc.SendMessage(ctx, Request{Text: "  Hello\n\n"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, testModel, result.ModelID)
	assert.Equal(t, "Hi, how can I help?", result.Reply)

	history, err := svc.History(ctx, result.SessionID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "Hello"}, history[0])
	assert.Equal(t, core.Message{Role: core.RoleAssistant, Content: "Hi, how can I help?"}, history[1])
}

func TestSendMessage_EchoesGivenSessionID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore(), &fakeKnowledge{}, &fakeProvider{reply: "ok"})

	result, err := svc.SendMessage(ctx, Request{SessionID: "abc-123", Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "abc-123", result.SessionID)
}

func TestSendMessage_InvalidModel(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store, &fakeKnowledge{}, &fakeProvider{reply: "ok"})

	_, err := svc.SendMessage(ctx, Request{ModelID: "no-such-model", Text: "hi"})
	require.ErrorIs(t, err, core.ErrInvalidModel)

	// Nothing may be persisted before the model id is validated.
	ids, err := store.SessionIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSendMessage_GenerationFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	provider := &fakeProvider{err: errors.New("model overloaded")}
	svc := newTestService(store, &fakeKnowledge{}, provider)

	_, err := svc.SendMessage(ctx, Request{SessionID: "s1", Text: "hi"})
	require.Error(t, err)

	history, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "hi"}, history[0])
}

func TestSendMessage_StripsReasoningFromReply(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	provider := &fakeProvider{reply: "<think>checking the docs</think>\nUse the reset link."}
	svc := newTestService(store, &fakeKnowledge{}, provider)

	result, err := svc.SendMessage(ctx, Request{SessionID: "s1", Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Use the reset link.", result.Reply)

	history, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Use the reset link.", history[1].Content)
}

func TestHistory_UnknownSessionIsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore(), &fakeKnowledge{}, &fakeProvider{})

	history, err := svc.History(ctx, "never-seen")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteSession_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store, &fakeKnowledge{}, &fakeProvider{reply: "ok"})

	require.NoError(t, svc.DeleteSession(ctx, "never-seen"))

	_, err := svc.SendMessage(ctx, Request{SessionID: "s1", Text: "hi"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, "s1"))
	require.NoError(t, svc.DeleteSession(ctx, "s1"))

	history, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSessions_ListsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore(), &fakeKnowledge{}, &fakeProvider{reply: "ok"})

	for _, id := range []string{"s1", "s2", "s1"} {
		_, err := svc.SendMessage(ctx, Request{SessionID: id, Text: "hi"})
		require.NoError(t, err)
	}

	ids, err := svc.Sessions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s1", "s2"}, ids)
}
