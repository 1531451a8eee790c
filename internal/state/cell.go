// Package state provides a broadcast cell: a single current value plus a set
// of live subscriptions, each of which receives the value current at
// subscription time and every update issued after it, in order.
package state

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Next once the subscription has been closed.
var ErrClosed = errors.New("state: subscription closed")

// Cell holds one current value of type T. Set replaces the value and fans it
// out to every active subscription; Value reads it synchronously. All methods
// are safe for concurrent use from any goroutine.
type Cell[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[*Subscription[T]]struct{}
}

// New creates a cell holding initial.
func New[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[*Subscription[T]]struct{}),
	}
}

// Value returns the value set by the most recently completed Set, or the
// construction value if none has occurred.
func (c *Cell[T]) Value() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the current value and enqueues it to every active
// subscription. It never blocks on a slow consumer: queues are unbounded.
// Setting a value equal to the current one still delivers it to every
// subscriber; the cell performs no deduplication.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	for sub := range c.subs {
		sub.push(v)
	}
}

// Subscribe registers a new subscription anchored at the current value. The
// value snapshot and the registration happen in one critical section, so a
// Set racing with Subscribe is either part of the snapshot or delivered
// through the queue, never both and never neither. The snapshot is the first
// value Next returns.
//
// The caller owns the subscription and must Close it when done consuming;
// the cell never drops a subscriber on its own.
func (c *Cell[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{
		cell:  c,
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	c.mu.Lock()
	sub.push(c.value)
	c.subs[sub] = struct{}{}
	c.mu.Unlock()
	return sub
}

func (c *Cell[T]) unsubscribe(sub *Subscription[T]) {
	c.mu.Lock()
	delete(c.subs, sub)
	c.mu.Unlock()
}

// Subscription is one consumer's registration with a Cell. Values arrive on
// a private unbounded FIFO queue, so the producer never blocks on this
// consumer, and a consumer that never calls Next accumulates values until it
// closes.
type Subscription[T any] struct {
	cell *Cell[T]

	qmu   sync.Mutex
	queue []T

	ready chan struct{} // cap 1, holds a token while the queue is non-empty
	done  chan struct{}
	once  sync.Once
}

// push is called by the cell with its own lock held. Lock order is always
// cell.mu then qmu.
func (s *Subscription[T]) push(v T) {
	s.qmu.Lock()
	s.queue = append(s.queue, v)
	s.qmu.Unlock()
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Next returns the next value in arrival order, blocking until one is
// available. It returns ErrClosed after Close and ctx.Err() once the context
// is done.
func (s *Subscription[T]) Next(ctx context.Context) (T, error) {
	for {
		s.qmu.Lock()
		if len(s.queue) > 0 {
			v := s.queue[0]
			s.queue = s.queue[1:]
			if len(s.queue) > 0 {
				select {
				case s.ready <- struct{}{}:
				default:
				}
			}
			s.qmu.Unlock()
			return v, nil
		}
		s.qmu.Unlock()

		select {
		case <-s.ready:
		case <-s.done:
			var zero T
			return zero, ErrClosed
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Close deregisters the subscription from its cell and releases the queue,
// discarding any values not yet consumed. It is idempotent and safe to call
// concurrently with Set; once Close returns, Next only reports ErrClosed.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		// Deregister first: once the cell drops the subscription nothing
		// can push, so the queue stays empty after it is cleared.
		s.cell.unsubscribe(s)
		s.qmu.Lock()
		s.queue = nil
		s.qmu.Unlock()
		close(s.done)
	})
}
