package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainchat "stayhub/internal/domain/chat"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

// ChatStore archives conversations and messages. One conversation exists per
// (listing, guest) pair; message history comes back ascending by send time.
type ChatStore struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewChatStore(db *mongo.Database) *ChatStore {
	messages := db.Collection("chat_messages")
	_, _ = messages.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return &ChatStore{
		conversations: db.Collection("chat_conversations"),
		messages:      messages,
	}
}

func (s *ChatStore) GetOrCreateForListing(ctx context.Context, listingID domainlistings.ListingID, guestID, hostID domainuser.ID) (domainchat.Conversation, error) {
	key := string(listingID) + ":" + string(guestID)
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": conversationDocument{
			ID:           uuid.NewString(),
			Key:          key,
			ListingID:    string(listingID),
			Participants: []string{string(guestID), string(hostID)},
			CreatedAt:    now.UnixMilli(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc conversationDocument
	if err := s.conversations.FindOneAndUpdate(ctx, bson.M{"key": key}, update, opts).Decode(&doc); err != nil {
		return domainchat.Conversation{}, err
	}
	return doc.toModel(), nil
}

func (s *ChatStore) ByID(ctx context.Context, id string) (domainchat.Conversation, error) {
	var doc conversationDocument
	if err := s.conversations.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainchat.Conversation{}, domainchat.ErrNotFound
		}
		return domainchat.Conversation{}, err
	}
	return doc.toModel(), nil
}

func (s *ChatStore) ListByUser(ctx context.Context, userID domainuser.ID) ([]domainchat.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := s.conversations.Find(ctx, bson.M{"participants": string(userID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domainchat.Conversation
	for cursor.Next(ctx) {
		var doc conversationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toModel())
	}
	return out, cursor.Err()
}

func (s *ChatStore) Append(ctx context.Context, msg domainchat.Message) error {
	doc := messageDocument{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       string(msg.SenderID),
		Text:           msg.Text,
		CreatedAt:      msg.CreatedAt.UnixMilli(),
	}
	if _, err := s.messages.InsertOne(ctx, doc); err != nil {
		return err
	}
	_, err := s.conversations.UpdateByID(ctx, msg.ConversationID,
		bson.M{"$set": bson.M{"last_message_at": doc.CreatedAt}})
	return err
}

func (s *ChatStore) Messages(ctx context.Context, conversationID string, limit int) ([]domainchat.Message, error) {
	// Fetch newest-first so the limit takes the tail of the conversation,
	// then reverse back to ascending for the caller.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domainchat.Message
	for cursor.Next(ctx) {
		var doc messageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

type conversationDocument struct {
	ID            string   `bson:"_id"`
	Key           string   `bson:"key"`
	ListingID     string   `bson:"listing_id"`
	Participants  []string `bson:"participants"`
	CreatedAt     int64    `bson:"created_at"`
	LastMessageAt int64    `bson:"last_message_at"`
}

func (d conversationDocument) toModel() domainchat.Conversation {
	participants := make([]domainuser.ID, 0, len(d.Participants))
	for _, p := range d.Participants {
		participants = append(participants, domainuser.ID(p))
	}
	return domainchat.Conversation{
		ID:            d.ID,
		ListingID:     domainlistings.ListingID(d.ListingID),
		Participants:  participants,
		CreatedAt:     millisToTime(d.CreatedAt),
		LastMessageAt: millisToTime(d.LastMessageAt),
	}
}

type messageDocument struct {
	ID             string `bson:"_id"`
	ConversationID string `bson:"conversation_id"`
	SenderID       string `bson:"sender_id"`
	Text           string `bson:"text"`
	CreatedAt      int64  `bson:"created_at"`
}

func (d messageDocument) toModel() domainchat.Message {
	return domainchat.Message{
		ID:             d.ID,
		ConversationID: d.ConversationID,
		SenderID:       domainuser.ID(d.SenderID),
		Text:           d.Text,
		CreatedAt:      millisToTime(d.CreatedAt),
	}
}
