package notify

import (
	"context"
	"sync"
	"sync/atomic"
)

// defaultBufferSize is the per-subscription channel buffer.
const defaultBufferSize = 16

// MemoryChannel implements Channel with in-process subscriptions. A user is
// reachable while at least one subscription for them is open. Useful for
// single-process deployments and tests.
type MemoryChannel struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	closed atomic.Bool
}

// memorySub is one live subscription for a single user.
type memorySub struct {
	userID string
	ch     chan Payload
	closed atomic.Bool
	parent *MemoryChannel
}

// NewMemoryChannel creates an in-process live notification channel.
func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{
		subs: make(map[string][]*memorySub),
	}
}

// Notify delivers the payload to every open subscription for userID.
// A user with no subscriptions is unreachable. Full buffers drop the
// payload rather than block the caller.
func (c *MemoryChannel) Notify(ctx context.Context, userID string, payload Payload) error {
	if c.closed.Load() {
		return ErrChannelClosed
	}

	c.mu.RLock()
	subs := c.subs[userID]
	c.mu.RUnlock()

	if len(subs) == 0 {
		return ErrRecipientUnreachable
	}

	for _, sub := range subs {
		if sub.closed.Load() {
			continue
		}
		select {
		case sub.ch <- payload:
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Buffer full, drop rather than block.
		}
	}

	return nil
}

// Subscribe opens a live subscription for userID. The returned Subscription
// receives every payload pushed to that user until it is closed.
func (c *MemoryChannel) Subscribe(userID string) (*Subscription, error) {
	if c.closed.Load() {
		return nil, ErrChannelClosed
	}

	sub := &memorySub{
		userID: userID,
		ch:     make(chan Payload, defaultBufferSize),
		parent: c,
	}

	c.mu.Lock()
	c.subs[userID] = append(c.subs[userID], sub)
	c.mu.Unlock()

	return &Subscription{sub: sub}, nil
}

// Close shuts down the channel and all open subscriptions.
func (c *MemoryChannel) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, subs := range c.subs {
		for _, sub := range subs {
			if !sub.closed.Swap(true) {
				close(sub.ch)
			}
		}
	}
	c.subs = make(map[string][]*memorySub)

	return nil
}

// Subscription is an open live-notification stream for one user.
type Subscription struct {
	sub *memorySub
}

// Payloads returns the channel of incoming payloads. It is closed when the
// subscription ends.
func (s *Subscription) Payloads() <-chan Payload {
	return s.sub.ch
}

// Unsubscribe closes the subscription and removes it from the channel.
func (s *Subscription) Unsubscribe() {
	if s.sub.closed.Swap(true) {
		return
	}
	close(s.sub.ch)

	c := s.sub.parent
	c.mu.Lock()
	defer c.mu.Unlock()

	subs := c.subs[s.sub.userID]
	for i, sub := range subs {
		if sub == s.sub {
			c.subs[s.sub.userID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}
