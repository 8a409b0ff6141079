package services

import (
	"sync"
	"testing"
	"time"
)

func newTestClient(hub *Hub, id uint, userType string, buffer int) *Client {
	return &Client{
		ID:       id,
		UserType: userType,
		Send:     make(chan []byte, buffer),
		Hub:      hub,
	}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetConnectedClients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("connected clients = %d, want %d", hub.GetConnectedClients(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSendToUserDelivers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 7, "client", 1)
	hub.register <- client
	waitForClients(t, hub, 1)

	hub.SendToUser(7, "notification", "hello")

	select {
	case msg := <-client.Send:
		if len(msg) == 0 {
			t.Fatal("empty message delivered")
		}
	case <-time.After(time.Second):
		t.Fatal("message never delivered")
	}
	if hub.GetConnectedClients() != 1 {
		t.Fatalf("healthy client was dropped")
	}
}

func TestSendToUserConcurrentWithSaturatedClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No buffer and no reader, so every send finds the client stalled.
	client := newTestClient(hub, 1, "client", 0)
	hub.register <- client
	waitForClients(t, hub, 1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.SendToUser(1, "notification", "x")
		}()
	}
	wg.Wait()

	waitForClients(t, hub, 0)

	// The Send channel must be closed exactly once; a second close would
	// have panicked one of the senders above.
	if _, ok := <-client.Send; ok {
		t.Fatal("expected send channel to be closed and drained")
	}
}

func TestBroadcastDropsStalledClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stalled := newTestClient(hub, 2, "client", 0)
	healthy := newTestClient(hub, 3, "vendor", 4)
	hub.register <- stalled
	hub.register <- healthy
	waitForClients(t, hub, 2)

	hub.Broadcast("notification", "everyone")

	waitForClients(t, hub, 1)
	select {
	case <-healthy.Send:
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached healthy client")
	}
}

func TestDropIsIdempotent(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 4, "client", 0)

	hub.mutex.Lock()
	hub.clients[client] = true
	hub.mutex.Unlock()

	hub.drop(client)
	hub.drop(client)

	if n := hub.GetConnectedClients(); n != 0 {
		t.Fatalf("connected clients = %d, want 0", n)
	}
}

func TestSendToUserTypeTargetsType(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	vendor := newTestClient(hub, 5, "vendor", 1)
	client := newTestClient(hub, 6, "client", 1)
	hub.register <- vendor
	hub.register <- client
	waitForClients(t, hub, 2)

	hub.SendToUserType("vendor", "notification", "vendors only")

	select {
	case <-vendor.Send:
	case <-time.After(time.Second):
		t.Fatal("vendor never received message")
	}
	select {
	case <-client.Send:
		t.Fatal("client received a vendor-only message")
	default:
	}
}
