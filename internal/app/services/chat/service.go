package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	handlersupport "stayhub/internal/app/handlers/support"
	"stayhub/internal/app/uow"
	domainchat "stayhub/internal/domain/chat"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

const defaultHistoryLimit = 50

// Broadcaster fans a stored message out to live subscribers. Subscribe
// returns a cancel func; the channel closes when the subscription ends.
type Broadcaster interface {
	Publish(conversationID string, msg domainchat.Message)
	Subscribe(conversationID string) (<-chan domainchat.Message, func())
}

// Service runs listing conversations: open, history, send, live stream.
type Service struct {
	Store      domainchat.Store
	Hub        Broadcaster
	UoWFactory uow.Factory
	Logger     *slog.Logger
}

// OpenForListing finds or starts the guest's conversation for a listing.
func (s *Service) OpenForListing(ctx context.Context, listingID domainlistings.ListingID, guestID domainuser.ID) (domainchat.Conversation, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, s.UoWFactory)
	if err != nil {
		return domainchat.Conversation{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	listing, err := unit.Listings().ByID(execCtx, listingID)
	if err != nil {
		return domainchat.Conversation{}, err
	}
	hostID := domainuser.ID(listing.Host)
	if hostID == guestID {
		return domainchat.Conversation{}, domainchat.ErrSelfChat
	}
	return s.Store.GetOrCreateForListing(ctx, listingID, guestID, hostID)
}

// History returns the conversation's messages, oldest first.
func (s *Service) History(ctx context.Context, conversationID string, requester domainuser.ID, limit int) ([]domainchat.Message, error) {
	conv, err := s.authorize(ctx, conversationID, requester)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.Store.Messages(ctx, conv.ID, limit)
}

// Send stores a message and pushes it to live subscribers.
func (s *Service) Send(ctx context.Context, conversationID string, sender domainuser.ID, text string) (domainchat.Message, error) {
	conv, err := s.authorize(ctx, conversationID, sender)
	if err != nil {
		return domainchat.Message{}, err
	}
	msg, err := domainchat.NewMessage(uuid.NewString(), conv.ID, sender, text, time.Now())
	if err != nil {
		return domainchat.Message{}, err
	}
	if err := s.Store.Append(ctx, msg); err != nil {
		return domainchat.Message{}, err
	}
	if s.Hub != nil {
		s.Hub.Publish(conv.ID, msg)
	}
	if s.Logger != nil {
		s.Logger.Debug("chat message sent", "conversation_id", conv.ID, "sender_id", sender)
	}
	return msg, nil
}

// Stream subscribes to new messages after a participant check.
func (s *Service) Stream(ctx context.Context, conversationID string, requester domainuser.ID) (<-chan domainchat.Message, func(), error) {
	if s.Hub == nil {
		return nil, nil, domainchat.ErrNotFound
	}
	conv, err := s.authorize(ctx, conversationID, requester)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.Hub.Subscribe(conv.ID)
	return ch, cancel, nil
}

// ListForUser returns the user's conversations.
func (s *Service) ListForUser(ctx context.Context, userID domainuser.ID) ([]domainchat.Conversation, error) {
	return s.Store.ListByUser(ctx, userID)
}

func (s *Service) authorize(ctx context.Context, conversationID string, requester domainuser.ID) (domainchat.Conversation, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return domainchat.Conversation{}, domainchat.ErrNotFound
	}
	conv, err := s.Store.ByID(ctx, conversationID)
	if err != nil {
		return domainchat.Conversation{}, err
	}
	if !conv.HasParticipant(requester) {
		return domainchat.Conversation{}, domainchat.ErrNotParticipant
	}
	return conv, nil
}
