// Package notify produces notification records from workflow transitions
// and keeps them in an in-memory feed. Notifications are ephemeral: they
// live only in the running process.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/parltrack/parltrack/internal/model"
)

// Broadcaster pushes a freshly dispatched notification to live sessions.
type Broadcaster interface {
	Notify(n model.Notification)
}

// Dispatcher builds notifications and fans them out to the feed and, when
// a broadcaster is wired, to connected clients.
type Dispatcher struct {
	feed        *Feed
	broadcaster Broadcaster
	now         func() time.Time
	newID       func() string
}

func NewDispatcher(feed *Feed, broadcaster Broadcaster) *Dispatcher {
	return &Dispatcher{
		feed:        feed,
		broadcaster: broadcaster,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Dispatch constructs a notification for the target (a member id or
// model.AdminTarget), records it in the feed, and broadcasts it.
func (d *Dispatcher) Dispatch(target, title, message string, typ model.NotificationType) model.Notification {
	n := model.Notification{
		ID:        d.newID(),
		UserID:    target,
		Title:     title,
		Message:   message,
		Type:      typ,
		IsRead:    false,
		Timestamp: d.now(),
	}

	d.feed.Add(n)
	if d.broadcaster != nil {
		d.broadcaster.Notify(n)
	}
	return n
}
