package chat

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/user"
)

func TestNewMessageTrimsAndStamps(t *testing.T) {
	sent := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	msg, err := NewMessage("m1", "conv-1", "guest-1", "  hello there  ", sent)
	require.NoError(t, err)
	assert.Equal(t, "hello there", msg.Text)
	assert.Equal(t, time.UTC, msg.CreatedAt.Location())
}

func TestNewMessageRejectsBlankText(t *testing.T) {
	_, err := NewMessage("m1", "conv-1", "guest-1", "   \t\n", time.Now())
	require.ErrorIs(t, err, ErrTextRequired)
}

func TestNewMessageTruncatesOnRuneBoundary(t *testing.T) {
	// One byte over the limit, with a two-byte rune straddling the cut.
	text := strings.Repeat("a", MaxTextLength-1) + "é"
	require.Equal(t, MaxTextLength+1, len(text))

	msg, err := NewMessage("m1", "conv-1", "guest-1", text, time.Now())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(msg.Text), MaxTextLength)
	assert.True(t, utf8.ValidString(msg.Text))
	assert.Equal(t, strings.Repeat("a", MaxTextLength-1), msg.Text, "the split rune is dropped whole")
}

func TestConversationHasParticipant(t *testing.T) {
	conv := Conversation{Participants: []user.ID{"guest-1", "host-1"}}
	assert.True(t, conv.HasParticipant("host-1"))
	assert.False(t, conv.HasParticipant("stranger"))
}
