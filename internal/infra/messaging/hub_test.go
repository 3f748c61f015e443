package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainchat "stayhub/internal/domain/chat"
)

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("conv-1")
	defer cancel()

	hub.Publish("conv-1", domainchat.Message{ID: "m1", ConversationID: "conv-1"})

	select {
	case msg := <-ch:
		assert.Equal(t, "m1", msg.ID)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestHubIsolatesConversations(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("conv-1")
	defer cancel()

	hub.Publish("conv-2", domainchat.Message{ID: "m1"})

	select {
	case <-ch:
		t.Fatal("message leaked across conversations")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("conv-1")
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic or block.
	hub.Publish("conv-1", domainchat.Message{ID: "m2"})
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("conv-1")
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Publish("conv-1", domainchat.Message{ID: "m"})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			require.Equal(t, subscriberBuffer, received)
			return
		}
	}
}
