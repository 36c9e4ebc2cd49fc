package notify

import (
	"sync"

	"github.com/parltrack/parltrack/internal/model"
)

// Feed is the in-memory notification list, newest first. The presentation
// layer reads it and marks entries read; nothing is persisted.
type Feed struct {
	mu      sync.RWMutex
	entries []model.Notification
}

func NewFeed() *Feed {
	return &Feed{}
}

// Add prepends a notification, keeping the newest entry first.
func (f *Feed) Add(n model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append([]model.Notification{n}, f.entries...)
}

// All returns a copy of every entry, newest first.
func (f *Feed) All() []model.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]model.Notification, len(f.entries))
	copy(out, f.entries)
	return out
}

// For returns the entries visible to a session: admin sessions see the
// ADMIN broadcasts, member sessions see notifications addressed to them.
func (f *Feed) For(memberID string, admin bool) []model.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []model.Notification
	for _, n := range f.entries {
		if admin && n.UserID == model.AdminTarget {
			out = append(out, n)
		}
		if !admin && n.UserID == memberID {
			out = append(out, n)
		}
	}
	return out
}

// MarkRead flags the entry with the given id as read. It reports whether
// the entry was found.
func (f *Feed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].IsRead = true
			return true
		}
	}
	return false
}
