package realtime

import (
	"sync"

	"github.com/openbloom/bloom/store"
)

// ListenerSlot holds at most one live subscription for a view. Attaching a
// new one tears down the previous listener first, so a view can never
// receive duplicate callbacks from a stale query.
type ListenerSlot struct {
	mu  sync.Mutex
	sub *store.Subscription
}

// Attach runs subscribe and installs the resulting subscription. The old
// subscription, if any, is cancelled before subscribe runs.
func (s *ListenerSlot) Attach(subscribe func() (*store.Subscription, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	sub, err := subscribe()
	if err != nil {
		return err
	}
	s.sub = sub
	return nil
}

func (s *ListenerSlot) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
}
