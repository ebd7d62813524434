// Package events provides change notifications for todotrack adapters.
//
// The REST API publishes an event for every mutation; WebSocket clients
// and the terminal UI subscribe to refresh their views.
package events

import (
	"sync"
	"time"
)

// Type defines the kind of change an event describes.
type Type string

const (
	// TypeTaskCreated indicates a new task was created.
	TypeTaskCreated Type = "task_created"
	// TypeTaskUpdated indicates a task was modified.
	TypeTaskUpdated Type = "task_updated"
	// TypeTaskDeleted indicates a task was deleted.
	TypeTaskDeleted Type = "task_deleted"
	// TypeCompletionRecorded indicates a completion was recorded.
	TypeCompletionRecorded Type = "completion_recorded"
	// TypeCompletionUndone indicates the most recent completion was undone.
	TypeCompletionUndone Type = "completion_undone"
	// TypeSummaryExported indicates daily summary artifacts were written.
	TypeSummaryExported Type = "summary_exported"
)

// Event represents a published change.
type Event struct {
	Type   Type      `json:"type"`
	TaskID int64     `json:"task_id,omitempty"`
	Data   any       `json:"data,omitempty"`
	Time   time.Time `json:"time"`
}

// Publisher defines the interface for event publishing.
type Publisher interface {
	// Publish sends an event to all subscribers.
	Publish(event Event)
	// Subscribe returns a channel that receives all published events.
	Subscribe() <-chan Event
	// Unsubscribe removes a subscription channel.
	Unsubscribe(ch <-chan Event)
	// Close shuts down the publisher and all subscriptions.
	Close()
}

// MemoryPublisher is an in-memory implementation of Publisher.
type MemoryPublisher struct {
	subscribers []chan Event
	mu          sync.RWMutex
	bufferSize  int
	closed      bool
}

// NewMemoryPublisher creates a new in-memory publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{bufferSize: 64}
}

// Publish sends an event to all subscribers. Non-blocking: subscribers
// with full buffers miss the event.
func (p *MemoryPublisher) Publish(event Event) {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return
	}
	for _, ch := range p.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel that receives all published events.
func (p *MemoryPublisher) Subscribe() <-chan Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, p.bufferSize)
	p.subscribers = append(p.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription channel and closes it.
func (p *MemoryPublisher) Unsubscribe(ch <-chan Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, sub := range p.subscribers {
		if sub == ch {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			close(sub)
			break
		}
	}
}

// Close shuts down the publisher and all subscriptions.
func (p *MemoryPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	for _, ch := range p.subscribers {
		close(ch)
	}
	p.subscribers = nil
}
