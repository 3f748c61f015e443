package ginserver

import (
	"encoding/json"
	"io"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	chatapp "stayhub/internal/app/services/chat"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

// ChatHandler exposes listing conversations, including a server-sent events
// stream for live updates.
type ChatHandler struct {
	Service *chatapp.Service
}

type openConversationRequest struct {
	ListingID string `json:"listing_id"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h ChatHandler) Open(c *gin.Context) {
	user, ok := requireAuth(c)
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat unavailable"})
		return
	}
	var req openConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conv, err := h.Service.OpenForListing(c.Request.Context(),
		domainlistings.ListingID(req.ListingID), domainuser.ID(user.ID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapConversation(conv))
}

func (h ChatHandler) List(c *gin.Context) {
	user, ok := requireAuth(c)
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat unavailable"})
		return
	}
	convs, err := h.Service.ListForUser(c.Request.Context(), domainuser.ID(user.ID))
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]dto.Conversation, 0, len(convs))
	for _, conv := range convs {
		items = append(items, dto.MapConversation(conv))
	}
	c.JSON(http.StatusOK, dto.ConversationList{Items: items})
}

func (h ChatHandler) History(c *gin.Context) {
	user, ok := requireAuth(c)
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat unavailable"})
		return
	}
	msgs, err := h.Service.History(c.Request.Context(), c.Param("id"),
		domainuser.ID(user.ID), parseInt(c.Query("limit")))
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]dto.ChatMessage, 0, len(msgs))
	for _, msg := range msgs {
		items = append(items, dto.MapChatMessage(msg))
	}
	c.JSON(http.StatusOK, dto.ChatMessageList{Items: items})
}

func (h ChatHandler) Send(c *gin.Context) {
	user, ok := requireAuth(c)
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat unavailable"})
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.Service.Send(c.Request.Context(), c.Param("id"),
		domainuser.ID(user.ID), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapChatMessage(msg))
}

// Stream pushes new messages over SSE until the client disconnects.
func (h ChatHandler) Stream(c *gin.Context) {
	user, ok := requireAuth(c)
	if !ok {
		return
	}
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat unavailable"})
		return
	}
	ch, cancel, err := h.Service.Stream(c.Request.Context(), c.Param("id"), domainuser.ID(user.ID))
	if err != nil {
		respondError(c, err)
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, open := <-ch:
			if !open {
				return false
			}
			payload, err := json.Marshal(dto.MapChatMessage(msg))
			if err != nil {
				return true
			}
			c.SSEvent("message", string(payload))
			return true
		}
	})
}

var _ ChatHTTP = ChatHandler{}
