package view

import (
	"sync"

	"github.com/whalegame/whalegame/internal/news"
)

// NewsEvent notifies subscribers of a published item or feed post.
// Exactly one of Item/Feed is set.
type NewsEvent struct {
	Item *news.Item
	Feed *news.FeedItem
}

// NewsView maintains bounded ring buffers of news items and feed posts.
type NewsView struct {
	mu    sync.RWMutex
	items *ring[news.Item]
	feed  *ring[news.FeedItem]
}

// NewNewsView creates a NewsView retaining up to capacity entries per tape.
func NewNewsView(capacity int) *NewsView {
	if capacity <= 0 {
		capacity = 100
	}
	return &NewsView{
		items: newRing[news.Item](capacity),
		feed:  newRing[news.FeedItem](capacity),
	}
}

// Apply folds an event into the view.
func (v *NewsView) Apply(ev NewsEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if ev.Item != nil {
		v.items.append(*ev.Item)
	}
	if ev.Feed != nil {
		v.feed.append(*ev.Feed)
	}
}

// LatestNews returns the last n news items in chronological order.
func (v *NewsView) LatestNews(n int) []news.Item {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.items.last(n)
}

// LatestFeed returns the last n feed posts in chronological order.
func (v *NewsView) LatestFeed(n int) []news.FeedItem {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.feed.last(n)
}

// ring is a fixed-capacity overwrite-oldest buffer.
type ring[T any] struct {
	buf   []T
	size  int
	start int
	count int
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{buf: make([]T, capacity), size: capacity}
}

func (r *ring[T]) append(v T) {
	if r.count < r.size {
		r.buf[(r.start+r.count)%r.size] = v
		r.count++
		return
	}
	// overwrite oldest
	r.buf[r.start] = v
	r.start = (r.start + 1) % r.size
}

// last returns the last n entries in chronological order as a copy.
func (r *ring[T]) last(n int) []T {
	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}
	out := make([]T, n)
	first := (r.start + (r.count - n)) % r.size
	for i := 0; i < n; i++ {
		out[i] = r.buf[(first+i)%r.size]
	}
	return out
}
