// Package watch keeps client-side snapshots of conversations and
// notifications in sync with the backend by combining periodic polling
// with incremental realtime events. When a poll fails, the last good
// snapshot is kept and flagged as stale.
package watch

import "sync"

// subscribers is a small change-notification registry shared by the
// watchers. Callbacks run synchronously on the goroutine that caused
// the change and must not block.
type subscribers struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func (s *subscribers) add(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = map[int]func(){}
	}
	id := s.next
	s.next++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
