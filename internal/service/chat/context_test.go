package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzq1291/chatbot/internal/core"
)

func TestBuildContext_NewSessionWithoutKnowledge(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemStore(), &fakeKnowledge{}, &fakeProvider{})

	window, err := svc.buildContext(ctx, "fresh", "Hello")
	require.NoError(t, err)

	require.Len(t, window, 2)
	assert.Equal(t, core.RoleSystem, window[0].Role)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "Hello"}, window[1])
}

func TestBuildContext_HistoryIsChronological(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Append(ctx, "s1", core.RoleUser, "first"))
	require.NoError(t, store.Append(ctx, "s1", core.RoleAssistant, "second"))
	require.NoError(t, store.Append(ctx, "s1", core.RoleUser, "third"))

	svc := newTestService(store, &fakeKnowledge{}, &fakeProvider{})

	window, err := svc.buildContext(ctx, "s1", "fourth")
	require.NoError(t, err)

	// system + 3 history entries + new user turn
	require.Len(t, window, 5)
	assert.Equal(t, "first", window[1].Content)
	assert.Equal(t, "second", window[2].Content)
	assert.Equal(t, "third", window[3].Content)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "fourth"}, window[4])
}

func TestBuildContext_HistoryWindowIsBounded(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	for i := 0; i < 25; i++ {
		role := core.RoleUser
		if i%2 == 1 {
			role = core.RoleAssistant
		}
		require.NoError(t, store.Append(ctx, "s1", role, "turn"))
	}

	svc := newTestService(store, &fakeKnowledge{}, &fakeProvider{})

	window, err := svc.buildContext(ctx, "s1", "latest")
	require.NoError(t, err)

	// system + HistoryWindow entries + new user turn
	assert.Len(t, window, 1+testConfig().HistoryWindow+1)
}

func TestBuildContext_KnowledgeAugmentation(t *testing.T) {
	ctx := context.Background()
	know := &fakeKnowledge{docs: []core.KnowledgeDoc{
		{Title: "Password reset", Content: "Use the account page to reset your password."},
	}}
	svc := newTestService(newMemStore(), know, &fakeProvider{})

	// The search is substring-of-document, so the query must appear in the
	// doc verbatim for it to count as a hit.
	window, err := svc.buildContext(ctx, "s1", "reset your password")
	require.NoError(t, err)

	userEntry := window[len(window)-1]
	assert.Equal(t, core.RoleUser, userEntry.Role)
	assert.Contains(t, userEntry.Content, "reset your password")
	assert.Contains(t, userEntry.Content, "Relevant documents:")
	assert.Contains(t, userEntry.Content, "Password reset")
	assert.Contains(t, userEntry.Content, "Use the account page to reset your password.")
}

func TestBuildContext_NoMatchLeavesUserTextVerbatim(t *testing.T) {
	ctx := context.Background()
	know := &fakeKnowledge{docs: []core.KnowledgeDoc{
		{Title: "Shipping", Content: "Orders ship within two days."},
	}}
	svc := newTestService(newMemStore(), know, &fakeProvider{})

	window, err := svc.buildContext(ctx, "s1", "unrelated question")
	require.NoError(t, err)

	assert.Equal(t, "unrelated question", window[len(window)-1].Content)
}

func TestFormatDocs(t *testing.T) {
	block := formatDocs([]core.KnowledgeDoc{
		{Title: "T", Content: "C"},
		{Title: "T2", Content: "C2"},
	})

	assert.Equal(t, "Relevant documents:\nTitle: T\nContent: C\n\nTitle: T2\nContent: C2", block)
}
