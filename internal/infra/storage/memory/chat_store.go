package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainchat "stayhub/internal/domain/chat"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

type ChatStore struct {
	mu            sync.RWMutex
	conversations map[string]domainchat.Conversation
	byKey         map[string]string
	messages      map[string][]domainchat.Message
	now           func() time.Time
}

func NewChatStore(now func() time.Time) *ChatStore {
	if now == nil {
		now = time.Now
	}
	return &ChatStore{
		conversations: make(map[string]domainchat.Conversation),
		byKey:         make(map[string]string),
		messages:      make(map[string][]domainchat.Message),
		now:           now,
	}
}

func (s *ChatStore) GetOrCreateForListing(ctx context.Context, listingID domainlistings.ListingID, guestID, hostID domainuser.ID) (domainchat.Conversation, error) {
	key := string(listingID) + ":" + string(guestID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byKey[key]; ok {
		return s.conversations[id], nil
	}
	conv := domainchat.Conversation{
		ID:           uuid.NewString(),
		ListingID:    listingID,
		Participants: []domainuser.ID{guestID, hostID},
		CreatedAt:    s.now().UTC(),
	}
	s.byKey[key] = conv.ID
	s.conversations[conv.ID] = conv
	return conv, nil
}

func (s *ChatStore) ByID(ctx context.Context, id string) (domainchat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return domainchat.Conversation{}, domainchat.ErrNotFound
	}
	return conv, nil
}

func (s *ChatStore) ListByUser(ctx context.Context, userID domainuser.ID) ([]domainchat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domainchat.Conversation, 0)
	for _, conv := range s.conversations {
		if conv.HasParticipant(userID) {
			out = append(out, conv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (s *ChatStore) Append(ctx context.Context, msg domainchat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[msg.ConversationID]
	if !ok {
		return domainchat.ErrNotFound
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	conv.LastMessageAt = msg.CreatedAt
	s.conversations[msg.ConversationID] = conv
	return nil
}

func (s *ChatStore) Messages(ctx context.Context, conversationID string, limit int) ([]domainchat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]domainchat.Message(nil), msgs...), nil
}
