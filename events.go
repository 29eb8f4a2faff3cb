package reelsite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// ChangeEvent describes a content mutation. Open pages subscribe to these
// over SSE and re-fetch the affected partial.
type ChangeEvent struct {
	Collection string `json:"collection"` // "portfolio", "content", "skills", "experiences"
	Action     string `json:"action"`     // "create", "update", "delete"
	ID         string `json:"id,omitempty"`
}

// Broadcaster fans content change events out to live subscribers.
// A slow subscriber drops events rather than blocking the writer.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan ChangeEvent]struct{}
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan ChangeEvent]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel plus a
// cancel func. Cancel is idempotent; after it returns no further events are
// delivered on the channel.
func (b *Broadcaster) Subscribe() (<-chan ChangeEvent, func()) {
	ch := make(chan ChangeEvent, 8)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber. Full subscriber
// buffers drop the event for that subscriber only.
func (b *Broadcaster) Publish(ev ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount returns the number of live subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// handleEvents streams content change events as Server-Sent Events.
// The subscription is torn down when the client disconnects.
func (a *App) handleEvents(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	events, cancel := a.Broadcaster.Subscribe()
	defer cancel()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

// publishChange invalidates the cache and notifies subscribers in one step.
// Every admin write funnels through here.
func (a *App) publishChange(collection, action, id string) {
	a.Cache.Invalidate()
	a.Broadcaster.Publish(ChangeEvent{Collection: collection, Action: action, ID: id})
}
