package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainchat "stayhub/internal/domain/chat"
	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/money"
	"stayhub/internal/infra/messaging"
	"stayhub/internal/infra/storage/memory"
)

func newChatFixture(t *testing.T) *Service {
	t.Helper()
	factory := memory.NewFactory()
	listing, err := domainlistings.New(domainlistings.CreateParams{
		ID:          "lst-1",
		Host:        "host-1",
		Title:       "Canal view flat",
		NightlyRate: money.Must(10000, "EUR"),
		Now:         time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, factory.ListingsRepo.Save(context.Background(), listing))

	return &Service{
		Store:      memory.NewChatStore(nil),
		Hub:        messaging.NewHub(),
		UoWFactory: factory,
	}
}

func TestOpenForListingIsIdempotent(t *testing.T) {
	svc := newChatFixture(t)

	first, err := svc.OpenForListing(context.Background(), "lst-1", "guest-1")
	require.NoError(t, err)
	assert.True(t, first.HasParticipant("guest-1"))
	assert.True(t, first.HasParticipant("host-1"))

	second, err := svc.OpenForListing(context.Background(), "lst-1", "guest-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestOpenForListingRejectsSelfChat(t *testing.T) {
	svc := newChatFixture(t)
	_, err := svc.OpenForListing(context.Background(), "lst-1", "host-1")
	require.ErrorIs(t, err, domainchat.ErrSelfChat)
}

func TestSendRequiresParticipation(t *testing.T) {
	svc := newChatFixture(t)
	conv, err := svc.OpenForListing(context.Background(), "lst-1", "guest-1")
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), conv.ID, "stranger", "hello")
	require.ErrorIs(t, err, domainchat.ErrNotParticipant)
}

func TestSendStoresAndBroadcasts(t *testing.T) {
	svc := newChatFixture(t)
	conv, err := svc.OpenForListing(context.Background(), "lst-1", "guest-1")
	require.NoError(t, err)

	stream, cancel, err := svc.Stream(context.Background(), conv.ID, "host-1")
	require.NoError(t, err)
	defer cancel()

	sent, err := svc.Send(context.Background(), conv.ID, "guest-1", "is the flat free in June?")
	require.NoError(t, err)

	select {
	case got := <-stream:
		assert.Equal(t, sent.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("live message not delivered")
	}

	history, err := svc.History(context.Background(), conv.ID, "host-1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "is the flat free in June?", history[0].Text)
}

func TestHistoryKeepsSendOrder(t *testing.T) {
	svc := newChatFixture(t)
	conv, err := svc.OpenForListing(context.Background(), "lst-1", "guest-1")
	require.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Send(context.Background(), conv.ID, "guest-1", text)
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), conv.ID, "guest-1", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Text)
	assert.Equal(t, "third", history[1].Text)
}
