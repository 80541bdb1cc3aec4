package pubsub

import "testing"

func TestSubscribeReceivesInitialThenUpdates(t *testing.T) {
	hub := NewHub[int](4)
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	if v := <-ch; v != 1 {
		t.Fatalf("expected initial 1, got %d", v)
	}
	hub.Publish(2)
	if v := <-ch; v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
}

func TestSlowSubscriberKeepsNewest(t *testing.T) {
	hub := NewHub[int](1)
	ch, cancel := hub.Subscribe(0)
	defer cancel()

	for i := 1; i <= 5; i++ {
		hub.Publish(i)
	}
	if v := <-ch; v != 5 {
		t.Fatalf("expected newest value 5, got %d", v)
	}
}

func TestCancelClosesChannel(t *testing.T) {
	hub := NewHub[string](2)
	ch, cancel := hub.Subscribe("hello")
	<-ch

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	if hub.Len() != 0 {
		t.Fatalf("expected no subscribers, got %d", hub.Len())
	}
	hub.Publish("ignored")
}

func TestCloseReleasesAll(t *testing.T) {
	hub := NewHub[int](1)
	a, _ := hub.Subscribe(0)
	b, _ := hub.Subscribe(0)
	hub.Close()

	for _, ch := range []<-chan int{a, b} {
		<-ch
		if _, ok := <-ch; ok {
			t.Fatalf("expected channel closed")
		}
	}
}
