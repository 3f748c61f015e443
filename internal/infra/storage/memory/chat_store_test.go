package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainchat "stayhub/internal/domain/chat"
)

func seedConversation(t *testing.T, store *ChatStore, texts ...string) domainchat.Conversation {
	t.Helper()
	conv, err := store.GetOrCreateForListing(context.Background(), "lst-1", "guest-1", "host-1")
	require.NoError(t, err)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range texts {
		require.NoError(t, store.Append(context.Background(), domainchat.Message{
			ID:             text,
			ConversationID: conv.ID,
			SenderID:       "guest-1",
			Text:           text,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}))
	}
	return conv
}

func TestChatStoreLimitReturnsLatestAscending(t *testing.T) {
	store := NewChatStore(nil)
	conv := seedConversation(t, store, "a", "b", "c", "d", "e")

	msgs, err := store.Messages(context.Background(), conv.ID, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	// The tail of the conversation, oldest of the pair first.
	assert.Equal(t, "d", msgs[0].ID)
	assert.Equal(t, "e", msgs[1].ID)
}

func TestChatStoreZeroLimitReturnsEverything(t *testing.T) {
	store := NewChatStore(nil)
	conv := seedConversation(t, store, "a", "b", "c")

	msgs, err := store.Messages(context.Background(), conv.ID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "a", msgs[0].ID)
	assert.Equal(t, "c", msgs[2].ID)
}

func TestChatStoreAppendBumpsLastMessageAt(t *testing.T) {
	store := NewChatStore(nil)
	conv := seedConversation(t, store, "a")

	reloaded, err := store.ByID(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.LastMessageAt.IsZero())

	_, err = store.Messages(context.Background(), "missing", 0)
	require.NoError(t, err, "unknown conversation yields an empty history, not an error")
}
