package dto

import (
	"time"

	domainchat "stayhub/internal/domain/chat"
)

type Conversation struct {
	ID            string    `json:"id"`
	ListingID     string    `json:"listing_id,omitempty"`
	Participants  []string  `json:"participants"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at,omitempty"`
}

type ConversationList struct {
	Items []Conversation `json:"items"`
}

type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

type ChatMessageList struct {
	Items []ChatMessage `json:"items"`
}

func MapConversation(conv domainchat.Conversation) Conversation {
	participants := make([]string, 0, len(conv.Participants))
	for _, p := range conv.Participants {
		participants = append(participants, string(p))
	}
	return Conversation{
		ID:            conv.ID,
		ListingID:     string(conv.ListingID),
		Participants:  participants,
		CreatedAt:     conv.CreatedAt,
		LastMessageAt: conv.LastMessageAt,
	}
}

func MapChatMessage(msg domainchat.Message) ChatMessage {
	return ChatMessage{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       string(msg.SenderID),
		Text:           msg.Text,
		CreatedAt:      msg.CreatedAt,
	}
}
