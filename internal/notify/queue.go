// Package notify holds short-lived toast notifications.
//
// A Queue is an immutable value: every operation returns a new Queue and
// leaves the receiver untouched. Each entry expires on its own deadline and
// is removed by id, so a burst of pushes cannot cause one timer to evict
// another entry early.
package notify

import "time"

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

type ID uint64

type Notification struct {
	ID        ID
	Text      string
	ExpiresAt time.Time
}

type Queue struct {
	items []Notification
	next  ID
	ttl   time.Duration
}

func NewQueue(ttl time.Duration) Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Queue{ttl: ttl, next: 1}
}

func (q Queue) TTL() time.Duration {
	if q.ttl <= 0 {
		return DefaultTTL
	}
	return q.ttl
}

// Push appends text and returns the new queue with the id assigned to it.
func (q Queue) Push(text string, now time.Time) (Queue, Notification) {
	if q.next == 0 {
		q.next = 1
	}
	n := Notification{
		ID:        q.next,
		Text:      text,
		ExpiresAt: now.Add(q.TTL()),
	}

	items := make([]Notification, len(q.items), len(q.items)+1)
	copy(items, q.items)

	q.items = append(items, n)
	q.next++
	return q, n
}

// Remove drops the entry with the given id. Unknown ids are ignored.
func (q Queue) Remove(id ID) Queue {
	for i, n := range q.items {
		if n.ID != id {
			continue
		}
		items := make([]Notification, 0, len(q.items)-1)
		items = append(items, q.items[:i]...)
		q.items = append(items, q.items[i+1:]...)
		return q
	}
	return q
}

// Expire drops every entry whose deadline is at or before now.
func (q Queue) Expire(now time.Time) Queue {
	var items []Notification
	for _, n := range q.items {
		if now.Before(n.ExpiresAt) {
			items = append(items, n)
		}
	}
	q.items = items
	return q
}

func (q Queue) Len() int { return len(q.items) }

func (q Queue) Texts() []string {
	out := make([]string, len(q.items))
	for i, n := range q.items {
		out[i] = n.Text
	}
	return out
}
