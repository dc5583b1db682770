// Package notify holds the storefront's single transient notification.
// Posting replaces whatever is visible; there is no queue.
package notify

import (
	"sync"
	"time"
)

// Kind classifies a notice for styling.
type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "success"
}

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 3 * time.Second

// Notice is one message.
type Notice struct {
	Message string
	Kind    Kind
	Seq     uint64 // increases with every post
	Posted  time.Time
}

// Board is the notification surface.
type Board struct {
	mu      sync.Mutex
	current Notice
	visible bool
	seq     uint64
	ttl     time.Duration
	now     func() time.Time
}

// NewBoard returns a Board whose notices expire after ttl (DefaultTTL when zero).
func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{ttl: ttl, now: time.Now}
}

// TTL returns the auto-dismiss duration.
func (b *Board) TTL() time.Duration {
	return b.ttl
}

// Post replaces the visible notice and returns it.
func (b *Board) Post(kind Kind, message string) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.current = Notice{Message: message, Kind: kind, Seq: b.seq, Posted: b.now()}
	b.visible = true
	return b.current
}

// Current returns the visible notice, if any. Expired notices are hidden.
func (b *Board) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.visible {
		return Notice{}, false
	}
	if b.now().Sub(b.current.Posted) >= b.ttl {
		b.visible = false
		return Notice{}, false
	}
	return b.current, true
}

// Dismiss hides the notice with the given sequence number. A newer notice is
// left alone, so a stale timer never clears a fresh message.
func (b *Board) Dismiss(seq uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.visible || b.current.Seq != seq {
		return false
	}
	b.visible = false
	return true
}
