package chat

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/user"
)

var (
	ErrNotFound       = fault.New(fault.Validation, "chat: conversation not found")
	ErrTextRequired   = fault.New(fault.Validation, "chat: text is required")
	ErrNotParticipant = fault.New(fault.PermissionDenied, "chat: not a participant")
	ErrSelfChat       = fault.New(fault.Validation, "chat: cannot start chat with yourself")
)

const MaxTextLength = 4000

// Conversation is a guest-host thread attached to a listing.
type Conversation struct {
	ID            string
	ListingID     listings.ListingID
	Participants  []user.ID
	CreatedAt     time.Time
	LastMessageAt time.Time
}

func (c Conversation) HasParticipant(id user.ID) bool {
	for _, p := range c.Participants {
		if p == id {
			return true
		}
	}
	return false
}

type Message struct {
	ID             string
	ConversationID string
	SenderID       user.ID
	Text           string
	CreatedAt      time.Time
}

// NewMessage validates and normalizes an outgoing message.
func NewMessage(id, conversationID string, sender user.ID, text string, now time.Time) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrTextRequired
	}
	if len(text) > MaxTextLength {
		// Back off to a rune boundary so the cut never leaves invalid UTF-8.
		cut := MaxTextLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	if now.IsZero() {
		now = time.Now()
	}
	return Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       sender,
		Text:           text,
		CreatedAt:      now.UTC(),
	}, nil
}

// Store is the conversation archive. Messages come back sorted by send time
// ascending so the UI can append without re-sorting; with a positive limit
// only the latest messages are returned, so reconnecting clients see the
// most recent slice of the thread.
type Store interface {
	GetOrCreateForListing(ctx context.Context, listingID listings.ListingID, guestID, hostID user.ID) (Conversation, error)
	ByID(ctx context.Context, id string) (Conversation, error)
	ListByUser(ctx context.Context, userID user.ID) ([]Conversation, error)
	Append(ctx context.Context, msg Message) error
	Messages(ctx context.Context, conversationID string, limit int) ([]Message, error)
}
