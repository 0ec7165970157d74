package watch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyapp/hoygo/internal/models"
)

type fakeConversations struct {
	mu    sync.Mutex
	out   []models.Conversation
	err   error
	calls int
}

func (f *fakeConversations) Conversations(context.Context) ([]models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	out := make([]models.Conversation, len(f.out))
	copy(out, f.out)
	return out, nil
}

func (f *fakeConversations) set(out []models.Conversation, err error) {
	f.mu.Lock()
	f.out = out
	f.err = err
	f.mu.Unlock()
}

type fakeNotifications struct {
	mu  sync.Mutex
	out []models.Notification
	err error
}

func (f *fakeNotifications) List(context.Context, int) (*models.Page[models.Notification], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	out := make([]models.Notification, len(f.out))
	copy(out, f.out)
	return &models.Page[models.Notification]{Items: out, TotalCount: len(out)}, nil
}

func (f *fakeNotifications) set(out []models.Notification, err error) {
	f.mu.Lock()
	f.out = out
	f.err = err
	f.mu.Unlock()
}

func self() string { return "user-1" }

func conv(id string, unread int, updatedAt time.Time) models.Conversation {
	return models.Conversation{
		ID:          id,
		Peer:        models.User{ID: "peer-" + id},
		UnreadCount: unread,
		UpdatedAt:   updatedAt,
	}
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestConversationsPoll(t *testing.T) {
	now := time.Now()
	lister := &fakeConversations{}
	lister.set([]models.Conversation{conv("conv-1", 2, now), conv("conv-2", 1, now.Add(-time.Hour))}, nil)

	w := NewConversationsWatcher(lister, nil, self, time.Minute)
	w.poll(context.Background())

	snap := w.Snapshot()
	assert.Len(t, snap.Conversations, 2)
	assert.Equal(t, 3, snap.UnreadTotal)
	assert.False(t, snap.Stale)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestConversationsPollFailureKeepsCache(t *testing.T) {
	lister := &fakeConversations{}
	lister.set([]models.Conversation{conv("conv-1", 1, time.Now())}, nil)

	w := NewConversationsWatcher(lister, nil, self, time.Minute)
	w.poll(context.Background())

	lister.set(nil, errors.New("network down"))
	w.poll(context.Background())

	snap := w.Snapshot()
	assert.True(t, snap.Stale)
	assert.Len(t, snap.Conversations, 1, "last good data survives the failed poll")

	lister.set([]models.Conversation{conv("conv-1", 0, time.Now())}, nil)
	w.poll(context.Background())
	assert.False(t, w.Snapshot().Stale)
}

func TestOnMessageMovesConversationToFront(t *testing.T) {
	now := time.Now()
	lister := &fakeConversations{}
	lister.set([]models.Conversation{conv("conv-1", 0, now), conv("conv-2", 0, now.Add(-time.Hour))}, nil)

	w := NewConversationsWatcher(lister, nil, self, time.Minute)
	w.poll(context.Background())

	w.onMessage(rawJSON(t, models.Message{
		ID:             "msg-5",
		ConversationID: "conv-2",
		SenderID:       "peer-conv-2",
		Body:           "hello",
		CreatedAt:      now,
	}))

	snap := w.Snapshot()
	require.Len(t, snap.Conversations, 2)
	assert.Equal(t, "conv-2", snap.Conversations[0].ID)
	assert.Equal(t, 1, snap.Conversations[0].UnreadCount)
	require.NotNil(t, snap.Conversations[0].LastMessage)
	assert.Equal(t, "msg-5", snap.Conversations[0].LastMessage.ID)
}

func TestOnMessageFromSelfLeavesUnreadAlone(t *testing.T) {
	lister := &fakeConversations{}
	lister.set([]models.Conversation{conv("conv-1", 0, time.Now())}, nil)

	w := NewConversationsWatcher(lister, nil, self, time.Minute)
	w.poll(context.Background())

	w.onMessage(rawJSON(t, models.Message{
		ID:             "msg-6",
		ConversationID: "conv-1",
		SenderID:       "user-1",
		Body:           "sent from this account",
	}))

	assert.Zero(t, w.Snapshot().UnreadTotal)
}

func TestOnMessageForUnknownConversationTriggersRefresh(t *testing.T) {
	lister := &fakeConversations{}
	w := NewConversationsWatcher(lister, nil, self, time.Minute)

	w.onMessage(rawJSON(t, models.Message{ID: "msg-7", ConversationID: "conv-new", SenderID: "peer-x"}))

	select {
	case <-w.kick:
	default:
		t.Fatal("a message in an unknown conversation must request a poll")
	}
}

func TestOnRead(t *testing.T) {
	now := time.Now()
	c := conv("conv-1", 3, now)
	c.LastMessage = &models.Message{ID: "msg-1", ConversationID: "conv-1", SenderID: "user-1"}

	lister := &fakeConversations{}
	lister.set([]models.Conversation{c}, nil)

	w := NewConversationsWatcher(lister, nil, self, time.Minute)
	w.poll(context.Background())

	// The peer read our last message.
	w.onRead(rawJSON(t, models.MessageReadEvent{ConversationID: "conv-1", ReaderID: "peer-conv-1"}))
	snap := w.Snapshot()
	assert.Equal(t, 3, snap.Conversations[0].UnreadCount)
	assert.True(t, snap.Conversations[0].LastMessage.Read)

	// We read the conversation on another device.
	w.onRead(rawJSON(t, models.MessageReadEvent{ConversationID: "conv-1", ReaderID: "user-1"}))
	assert.Zero(t, w.Snapshot().UnreadTotal)
}

func TestTypingIndicator(t *testing.T) {
	lister := &fakeConversations{}
	lister.set([]models.Conversation{conv("conv-1", 0, time.Now())}, nil)

	w := NewConversationsWatcher(lister, nil, self, time.Minute)
	w.poll(context.Background())

	w.onTyping(rawJSON(t, models.TypingEvent{ConversationID: "conv-1", UserID: "peer-conv-1", Typing: true}))
	assert.Equal(t, []string{"conv-1"}, w.Snapshot().TypingIn)

	w.onTyping(rawJSON(t, models.TypingEvent{ConversationID: "conv-1", UserID: "peer-conv-1", Typing: false}))
	assert.Empty(t, w.Snapshot().TypingIn)

	// Our own typing echoes are ignored.
	w.onTyping(rawJSON(t, models.TypingEvent{ConversationID: "conv-1", UserID: "user-1", Typing: true}))
	assert.Empty(t, w.Snapshot().TypingIn)
}

func TestTypingIndicatorExpires(t *testing.T) {
	w := NewConversationsWatcher(&fakeConversations{}, nil, self, time.Minute)

	w.mu.Lock()
	w.typing["conv-1"] = time.Now().Add(-time.Second)
	w.mu.Unlock()

	assert.Empty(t, w.Snapshot().TypingIn)
}

func TestSubscribeAndCancel(t *testing.T) {
	lister := &fakeConversations{}
	w := NewConversationsWatcher(lister, nil, self, time.Minute)

	var mu sync.Mutex
	notified := 0
	cancel := w.Subscribe(func() {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	w.poll(context.Background())
	mu.Lock()
	assert.Equal(t, 1, notified)
	mu.Unlock()

	cancel()
	w.poll(context.Background())
	mu.Lock()
	assert.Equal(t, 1, notified, "cancelled subscribers stay silent")
	mu.Unlock()
}

func TestRunPollsOnKickAndStopsOnCancel(t *testing.T) {
	lister := &fakeConversations{}
	lister.set([]models.Conversation{conv("conv-1", 0, time.Now())}, nil)

	w := NewConversationsWatcher(lister, nil, self, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(w.Snapshot().Conversations) == 1
	}, 2*time.Second, 10*time.Millisecond)

	lister.set([]models.Conversation{conv("conv-1", 0, time.Now()), conv("conv-2", 0, time.Now())}, nil)
	w.Refresh()

	require.Eventually(t, func() bool {
		return len(w.Snapshot().Conversations) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}

func ntf(id string, createdAt time.Time, seen bool) models.Notification {
	return models.Notification{ID: id, Type: "booking", CreatedAt: createdAt, Seen: seen}
}

func TestNotificationsPollAndUnread(t *testing.T) {
	now := time.Now()
	lister := &fakeNotifications{}
	lister.set([]models.Notification{ntf("ntf-2", now, false), ntf("ntf-1", now.Add(-time.Hour), true)}, nil)

	w := NewNotificationsWatcher(lister, nil, time.Minute)
	w.poll(context.Background())

	snap := w.Snapshot()
	assert.Len(t, snap.Notifications, 2)
	assert.Equal(t, 1, snap.UnreadCount)
	assert.False(t, snap.Stale)
}

func TestOnNotificationPrependsAndDedupes(t *testing.T) {
	now := time.Now()
	lister := &fakeNotifications{}
	lister.set([]models.Notification{ntf("ntf-1", now.Add(-time.Hour), true)}, nil)

	w := NewNotificationsWatcher(lister, nil, time.Minute)
	w.poll(context.Background())

	w.onNotification(rawJSON(t, ntf("ntf-2", now, false)))
	snap := w.Snapshot()
	require.Len(t, snap.Notifications, 2)
	assert.Equal(t, "ntf-2", snap.Notifications[0].ID)

	// A duplicate push changes nothing.
	w.onNotification(rawJSON(t, ntf("ntf-2", now, false)))
	assert.Len(t, w.Snapshot().Notifications, 2)
}

func TestMergeNotifications(t *testing.T) {
	now := time.Now()
	polled := []models.Notification{
		ntf("ntf-2", now.Add(-time.Minute), true),
		ntf("ntf-1", now.Add(-time.Hour), true),
	}
	existing := []models.Notification{
		ntf("ntf-3", now, false), // realtime arrival the poll missed
		ntf("ntf-2", now.Add(-time.Minute), false),
		ntf("ntf-1", now.Add(-time.Hour), false),
	}

	merged := mergeNotifications(polled, existing)

	require.Len(t, merged, 3)
	assert.Equal(t, "ntf-3", merged[0].ID, "realtime arrivals newer than the poll stay ahead")
	assert.Equal(t, "ntf-2", merged[1].ID)
	assert.True(t, merged[1].Seen, "polled seen-state wins over the cached copy")
}

func TestMergeNotificationsEmptyFresh(t *testing.T) {
	existing := []models.Notification{ntf("ntf-1", time.Now(), false)}
	assert.Equal(t, existing, mergeNotifications(nil, existing))
}
