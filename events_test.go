package reelsite

import (
	"testing"
	"time"
)

func TestBroadcasterDeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()

	ch1, cancel1 := b.Subscribe()
	defer cancel1()
	ch2, cancel2 := b.Subscribe()
	defer cancel2()

	if got := b.SubscriberCount(); got != 2 {
		t.Fatalf("SubscriberCount = %d, want 2", got)
	}

	b.Publish(ChangeEvent{Collection: "portfolio", Action: "create", ID: "abc"})

	for i, ch := range []<-chan ChangeEvent{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Collection != "portfolio" || ev.Action != "create" || ev.ID != "abc" {
				t.Errorf("subscriber %d got %+v", i, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}

func TestBroadcasterCancelStopsDelivery(t *testing.T) {
	b := NewBroadcaster()

	ch, cancel := b.Subscribe()
	cancel()
	cancel() // idempotent

	if got := b.SubscriberCount(); got != 0 {
		t.Fatalf("SubscriberCount = %d, want 0 after cancel", got)
	}

	b.Publish(ChangeEvent{Collection: "content", Action: "update"})

	// The channel is closed, not fed.
	if ev, ok := <-ch; ok {
		t.Errorf("cancelled subscriber received %+v", ev)
	}
}

func TestBroadcasterDropsWhenBufferFull(t *testing.T) {
	b := NewBroadcaster()

	_, cancel := b.Subscribe()
	defer cancel()

	// A subscriber that never reads must not block publishers.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(ChangeEvent{Collection: "portfolio", Action: "update"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
