package watch

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hoyapp/hoygo/internal/logger"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/socket"
)

// conversationLister is the slice of the message service the watcher needs.
type conversationLister interface {
	Conversations(ctx context.Context) ([]models.Conversation, error)
}

// typingTTL is how long a typing indicator stays lit without a
// follow-up event.
const typingTTL = 6 * time.Second

// ConversationsSnapshot is one consistent view of the conversation list.
type ConversationsSnapshot struct {
	Conversations []models.Conversation
	UnreadTotal   int
	// TypingIn lists the conversations with a currently active typing
	// indicator.
	TypingIn []string
	// Stale is set when the newest poll failed and the data shown is
	// the last successful one.
	Stale     bool
	FetchedAt time.Time
}

// ConversationsWatcher maintains the conversation list: it polls the
// backend on an interval, applies realtime message events in between,
// and notifies subscribers on every change.
type ConversationsWatcher struct {
	svc      conversationLister
	sock     *socket.Service
	selfID   func() string
	interval time.Duration

	mu            sync.RWMutex
	conversations []models.Conversation
	typing        map[string]time.Time
	stale         bool
	fetchedAt     time.Time

	subs subscribers
	kick chan struct{}
}

// NewConversationsWatcher creates a stopped watcher; call Run to start
// it. sock may be nil, leaving polling as the only update source.
func NewConversationsWatcher(svc conversationLister, sock *socket.Service, selfID func() string, interval time.Duration) *ConversationsWatcher {
	return &ConversationsWatcher{
		svc:      svc,
		sock:     sock,
		selfID:   selfID,
		interval: interval,
		typing:   map[string]time.Time{},
		kick:     make(chan struct{}, 1),
	}
}

// Subscribe registers a change callback and returns its cancel func.
func (w *ConversationsWatcher) Subscribe(fn func()) (cancel func()) {
	return w.subs.add(fn)
}

// Refresh requests an immediate poll. It never blocks; a poll already
// pending absorbs the request.
func (w *ConversationsWatcher) Refresh() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. It performs one poll before
// returning control to the ticker loop, so a snapshot is available
// right after startup.
func (w *ConversationsWatcher) Run(ctx context.Context) {
	if w.sock != nil {
		w.sock.On(models.EventReceiveMessage, w.onMessage)
		w.sock.On(models.EventMessageRead, w.onRead)
		w.sock.On(models.EventTyping, w.onTyping)
		defer func() {
			w.sock.Off(models.EventReceiveMessage)
			w.sock.Off(models.EventMessageRead)
			w.sock.Off(models.EventTyping)
		}()
	}

	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		case <-w.kick:
			w.poll(ctx)
		}
	}
}

func (w *ConversationsWatcher) poll(ctx context.Context) {
	conversations, err := w.svc.Conversations(ctx)
	if err != nil {
		logger.Log.Warnw("conversation poll failed, keeping cached snapshot", "error", err)

		w.mu.Lock()
		w.stale = true
		w.mu.Unlock()

		w.subs.notify()
		return
	}

	w.mu.Lock()
	w.conversations = conversations
	w.stale = false
	w.fetchedAt = time.Now()
	w.mu.Unlock()

	w.subs.notify()
}

// Snapshot returns a copy of the current state. Expired typing
// indicators are filtered out at read time.
func (w *ConversationsWatcher) Snapshot() ConversationsSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := ConversationsSnapshot{
		Conversations: make([]models.Conversation, len(w.conversations)),
		Stale:         w.stale,
		FetchedAt:     w.fetchedAt,
	}
	copy(snap.Conversations, w.conversations)

	for _, c := range w.conversations {
		snap.UnreadTotal += c.UnreadCount
	}

	now := time.Now()
	for id, expiry := range w.typing {
		if expiry.After(now) {
			snap.TypingIn = append(snap.TypingIn, id)
		}
	}

	return snap
}

func (w *ConversationsWatcher) onMessage(payload json.RawMessage) {
	var msg models.Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Log.Warnw("malformed receive_message payload", "error", err)
		return
	}

	w.mu.Lock()

	idx := -1
	for i := range w.conversations {
		if w.conversations[i].ID == msg.ConversationID {
			idx = i
			break
		}
	}

	if idx == -1 {
		// Message for a conversation we have not seen yet; a full
		// poll is the only way to get its metadata.
		w.mu.Unlock()
		w.Refresh()
		return
	}

	conv := w.conversations[idx]
	msgCopy := msg
	conv.LastMessage = &msgCopy
	conv.UpdatedAt = msg.CreatedAt
	if w.selfID == nil || msg.SenderID != w.selfID() {
		conv.UnreadCount++
	}
	delete(w.typing, conv.ID)

	// Most recent activity first.
	w.conversations = append(w.conversations[:idx], w.conversations[idx+1:]...)
	w.conversations = append([]models.Conversation{conv}, w.conversations...)

	w.mu.Unlock()

	w.subs.notify()
}

func (w *ConversationsWatcher) onRead(payload json.RawMessage) {
	var ev models.MessageReadEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		logger.Log.Warnw("malformed message_read payload", "error", err)
		return
	}

	w.mu.Lock()
	for i := range w.conversations {
		if w.conversations[i].ID != ev.ConversationID {
			continue
		}
		if w.selfID != nil && ev.ReaderID == w.selfID() {
			// Read on another device of ours.
			w.conversations[i].UnreadCount = 0
		} else if w.conversations[i].LastMessage != nil {
			w.conversations[i].LastMessage.Read = true
		}
		break
	}
	w.mu.Unlock()

	w.subs.notify()
}

func (w *ConversationsWatcher) onTyping(payload json.RawMessage) {
	var ev models.TypingEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		logger.Log.Warnw("malformed typing payload", "error", err)
		return
	}
	if w.selfID != nil && ev.UserID == w.selfID() {
		return
	}

	w.mu.Lock()
	if ev.Typing {
		w.typing[ev.ConversationID] = time.Now().Add(typingTTL)
	} else {
		delete(w.typing, ev.ConversationID)
	}
	w.mu.Unlock()

	w.subs.notify()
}
