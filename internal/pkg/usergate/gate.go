// Package usergate serializes and throttles per-user operations. Each user
// gets their own slot so one customer hammering the order endpoint cannot
// block everyone else, while two requests from the same customer are
// processed one at a time.
package usergate

import (
	"errors"
	"sync"
	"time"
)

// ErrTooFrequent is returned when a user acts again before the configured
// interval has passed since their last completed action.
var ErrTooFrequent = errors.New("too many attempts, wait before trying again")

// Gate hands out per-user locks with a minimum interval between completed
// actions. The slot map is bounded: stale slots are evicted once the map
// grows past maxUsers, so a long-running process does not accumulate an
// entry for every user it has ever seen.
type Gate struct {
	mu    sync.Mutex
	slots map[int64]*slot

	interval time.Duration
	ttl      time.Duration
	maxUsers int

	now func() time.Time
}

type slot struct {
	mu          sync.Mutex
	lastDone    time.Time
	lastTouched time.Time
}

// NewGate creates a gate enforcing interval between completed actions per
// user, keeping at most maxUsers slots. Slots idle longer than twice the
// interval are eligible for eviction.
func NewGate(interval time.Duration, maxUsers int) *Gate {
	return &Gate{
		slots:    make(map[int64]*slot),
		interval: interval,
		ttl:      2 * interval,
		maxUsers: maxUsers,
		now:      time.Now,
	}
}

// Acquire takes the user's slot, blocking while another call for the same
// user is in flight. It returns ErrTooFrequent when the user completed an
// action within the interval. On success the returned release function must
// be called exactly once; pass done=true to arm the throttle for the next
// call, false to leave it untouched (for attempts that failed before doing
// anything).
func (g *Gate) Acquire(userID int64) (release func(done bool), err error) {
	s := g.slotFor(userID)
	s.mu.Lock()

	now := g.now()
	if !s.lastDone.IsZero() && now.Sub(s.lastDone) < g.interval {
		s.mu.Unlock()
		return nil, ErrTooFrequent
	}

	return func(done bool) {
		if done {
			s.lastDone = g.now()
		}
		s.mu.Unlock()
	}, nil
}

func (g *Gate) slotFor(userID int64) *slot {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.slots) >= g.maxUsers {
		g.evictStale()
	}

	s, ok := g.slots[userID]
	if !ok {
		s = &slot{}
		g.slots[userID] = s
	}
	s.lastTouched = g.now()
	return s
}

// evictStale drops idle slots, oldest first, until the map fits. Slots
// currently held by an in-flight call are skipped.
func (g *Gate) evictStale() {
	now := g.now()
	for id, s := range g.slots {
		if len(g.slots) < g.maxUsers {
			return
		}
		if now.Sub(s.lastTouched) < g.ttl {
			continue
		}
		if !s.mu.TryLock() {
			continue
		}
		s.mu.Unlock()
		delete(g.slots, id)
	}

	// every slot is fresh or busy, drop the least recently touched idle one
	if len(g.slots) >= g.maxUsers {
		var oldestID int64
		var oldest *slot
		for id, s := range g.slots {
			if oldest == nil || s.lastTouched.Before(oldest.lastTouched) {
				oldestID, oldest = id, s
			}
		}
		if oldest != nil && oldest.mu.TryLock() {
			oldest.mu.Unlock()
			delete(g.slots, oldestID)
		}
	}
}
