// Package realtime carries row change notifications between instances and
// out to browsers. Writers publish on a Feed; a Watcher on every instance
// turns notifications into cache reloads and websocket pushes.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"restaurant_site/config"
)

// Notification says that rows behind Channel changed. Payload is free text,
// usually the changed keys.
type Notification struct {
	Channel string `json:"channel"`
	Payload string `json:"payload"`
}

type Feed interface {
	Publish(ctx context.Context, channel, payload string) error
	// Subscribe delivers notifications until ctx is done, then closes the
	// returned channel.
	Subscribe(ctx context.Context, channels ...string) (<-chan Notification, error)
	Close() error
}

var ErrClosed = errors.New("feed closed")

// NewFeed builds the feed selected by REALTIME_DRIVER.
func NewFeed(ctx context.Context, cfg config.Settings) (Feed, error) {
	switch cfg.RealtimeDriver {
	case "redis":
		return NewRedisFeed(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "postgres":
		return NewPostgresFeed(ctx, cfg.DSN())
	case "memory":
		return NewMemoryFeed(), nil
	}
	return nil, fmt.Errorf("unknown REALTIME_DRIVER %q", cfg.RealtimeDriver)
}

// Notify publishes and logs failures. Callers have already committed their
// write, so a lost notification only delays other instances until the next
// periodic resync.
func Notify(ctx context.Context, feed Feed, channel, payload string) {
	if feed == nil {
		return
	}
	if err := feed.Publish(ctx, channel, payload); err != nil {
		log.Printf("[realtime] publish on %s failed: %v", channel, err)
	}
}

const subscriberBuffer = 64

// MemoryFeed delivers notifications inside one process.
type MemoryFeed struct {
	mu     sync.Mutex
	subs   map[int]*memorySub
	nextID int
	closed bool
}

type memorySub struct {
	channels map[string]bool
	out      chan Notification
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: map[int]*memorySub{}}
}

func (m *MemoryFeed) Publish(_ context.Context, channel, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	n := Notification{Channel: channel, Payload: payload}
	for _, s := range m.subs {
		if !s.channels[channel] {
			continue
		}
		select {
		case s.out <- n:
		default:
			log.Printf("[realtime] subscriber buffer full, dropping %s notification", channel)
		}
	}
	return nil
}

func (m *MemoryFeed) Subscribe(ctx context.Context, channels ...string) (<-chan Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	s := &memorySub{channels: map[string]bool{}, out: make(chan Notification, subscriberBuffer)}
	for _, ch := range channels {
		s.channels[ch] = true
	}
	id := m.nextID
	m.nextID++
	m.subs[id] = s

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(s.out)
		}
		m.mu.Unlock()
	}()
	return s.out, nil
}

func (m *MemoryFeed) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for id, s := range m.subs {
		delete(m.subs, id)
		close(s.out)
	}
	return nil
}
