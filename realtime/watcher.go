package realtime

import (
	"context"
	"log"
	"sync"

	"restaurant_site/theme"
)

type HandlerFunc func(ctx context.Context, n Notification)

// Watcher subscribes once to every registered channel and dispatches
// notifications in arrival order.
type Watcher struct {
	feed     Feed
	mu       sync.Mutex
	handlers map[string][]HandlerFunc
}

func NewWatcher(feed Feed) *Watcher {
	return &Watcher{feed: feed, handlers: map[string][]HandlerFunc{}}
}

// On registers fn for channel. Register before Run.
func (w *Watcher) On(channel string, fn HandlerFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[channel] = append(w.handlers[channel], fn)
}

// Run blocks until ctx is done or the feed closes the subscription.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	channels := make([]string, 0, len(w.handlers))
	for ch := range w.handlers {
		channels = append(channels, ch)
	}
	w.mu.Unlock()

	notes, err := w.feed.Subscribe(ctx, channels...)
	if err != nil {
		return err
	}
	log.Printf("[realtime] watching %v", channels)
	for n := range notes {
		w.dispatch(ctx, n)
	}
	return ctx.Err()
}

func (w *Watcher) dispatch(ctx context.Context, n Notification) {
	w.mu.Lock()
	fns := append([]HandlerFunc(nil), w.handlers[n.Channel]...)
	w.mu.Unlock()
	for _, fn := range fns {
		fn(ctx, n)
	}
}

// Cache is a snapshot holder that can be marked stale and refetched.
type Cache interface {
	Invalidate()
	Load(ctx context.Context) (theme.Snapshot, error)
}

// InvalidateAndLoad marks c stale, then reloads it. A failed load leaves c
// stale with its previous snapshot.
func InvalidateAndLoad(c Cache) HandlerFunc {
	return func(ctx context.Context, n Notification) {
		c.Invalidate()
		if _, err := c.Load(ctx); err != nil {
			log.Printf("[realtime] reload after %s change failed: %v", n.Channel, err)
		}
	}
}
