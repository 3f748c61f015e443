package messaging

import (
	"sync"

	domainchat "stayhub/internal/domain/chat"
)

const subscriberBuffer = 16

// Hub fans chat messages out to in-process subscribers. A slow subscriber
// drops messages instead of blocking the sender; history endpoints fill any
// gap on reconnect.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan domainchat.Message
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan domainchat.Message)}
}

func (h *Hub) Publish(conversationID string, msg domainchat.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[conversationID] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribe registers a listener. The returned cancel closes the channel and
// must be called exactly once.
func (h *Hub) Subscribe(conversationID string) (<-chan domainchat.Message, func()) {
	ch := make(chan domainchat.Message, subscriberBuffer)
	h.mu.Lock()
	id := h.next
	h.next++
	if h.subs[conversationID] == nil {
		h.subs[conversationID] = make(map[int]chan domainchat.Message)
	}
	h.subs[conversationID][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[conversationID]; ok {
			if sub, ok := set[id]; ok {
				delete(set, id)
				close(sub)
			}
			if len(set) == 0 {
				delete(h.subs, conversationID)
			}
		}
	}
	return ch, cancel
}
