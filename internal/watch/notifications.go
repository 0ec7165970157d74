package watch

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	funk "github.com/thoas/go-funk"

	"github.com/hoyapp/hoygo/internal/logger"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/socket"
)

// notificationLister is the slice of the notification service the
// watcher needs.
type notificationLister interface {
	List(ctx context.Context, page int) (*models.Page[models.Notification], error)
}

// NotificationsSnapshot is one consistent view of the notification feed.
type NotificationsSnapshot struct {
	Notifications []models.Notification
	UnreadCount   int
	Stale         bool
	FetchedAt     time.Time
}

// NotificationsWatcher maintains the first page of the notification
// feed, layering realtime pushes on top of the polled state.
type NotificationsWatcher struct {
	svc      notificationLister
	sock     *socket.Service
	interval time.Duration

	mu            sync.RWMutex
	notifications []models.Notification
	stale         bool
	fetchedAt     time.Time

	subs subscribers
	kick chan struct{}
}

// NewNotificationsWatcher creates a stopped watcher; call Run to start
// it. sock may be nil, leaving polling as the only update source.
func NewNotificationsWatcher(svc notificationLister, sock *socket.Service, interval time.Duration) *NotificationsWatcher {
	return &NotificationsWatcher{
		svc:      svc,
		sock:     sock,
		interval: interval,
		kick:     make(chan struct{}, 1),
	}
}

// Subscribe registers a change callback and returns its cancel func.
func (w *NotificationsWatcher) Subscribe(fn func()) (cancel func()) {
	return w.subs.add(fn)
}

// Refresh requests an immediate poll without blocking.
func (w *NotificationsWatcher) Refresh() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled.
func (w *NotificationsWatcher) Run(ctx context.Context) {
	if w.sock != nil {
		w.sock.On(models.EventReceiveNotification, w.onNotification)
		defer w.sock.Off(models.EventReceiveNotification)
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

func (w *NotificationsWatcher) poll(ctx context.Context) {
	page, err := w.svc.List(ctx, 1)
	if err != nil {
		logger.Log.Warnw("notification poll failed, keeping cached snapshot", "error", err)

		w.mu.Lock()
		w.stale = true
		w.mu.Unlock()

		w.subs.notify()
		return
	}

	w.mu.Lock()
	w.notifications = mergeNotifications(page.Items, w.notifications)
	w.stale = false
	w.fetchedAt = time.Now()
	w.mu.Unlock()

	w.subs.notify()
}

// mergeNotifications layers realtime arrivals that the poll has not
// caught up with yet on top of the freshly polled page. Anything the
// poll already returned wins, so seen-state changes propagate.
func mergeNotifications(fresh, existing []models.Notification) []models.Notification {
	if len(fresh) == 0 {
		return existing
	}

	freshIDs := funk.Map(fresh, func(n models.Notification) string {
		return n.ID
	}).([]string)

	newest := fresh[0].CreatedAt
	var ahead []models.Notification
	for _, n := range existing {
		if !n.CreatedAt.After(newest) {
			break
		}
		if !funk.ContainsString(freshIDs, n.ID) {
			ahead = append(ahead, n)
		}
	}

	return append(ahead, fresh...)
}

// Snapshot returns a copy of the current state.
func (w *NotificationsWatcher) Snapshot() NotificationsSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := NotificationsSnapshot{
		Notifications: make([]models.Notification, len(w.notifications)),
		Stale:         w.stale,
		FetchedAt:     w.fetchedAt,
	}
	copy(snap.Notifications, w.notifications)

	for _, n := range w.notifications {
		if !n.Seen {
			snap.UnreadCount++
		}
	}

	return snap
}

func (w *NotificationsWatcher) onNotification(payload json.RawMessage) {
	var n models.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		logger.Log.Warnw("malformed receive_notification payload", "error", err)
		return
	}

	w.mu.Lock()
	known := funk.Contains(funk.Map(w.notifications, func(item models.Notification) string {
		return item.ID
	}), n.ID)
	if !known {
		w.notifications = append([]models.Notification{n}, w.notifications...)
	}
	w.mu.Unlock()

	if !known {
		w.subs.notify()
	}
}
