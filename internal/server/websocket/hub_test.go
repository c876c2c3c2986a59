package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	logger := zerolog.Nop()
	return NewHub(&logger)
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient("test-1", hub, nil)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(Message{Type: "course.updated", Timestamp: time.Now(), Data: "COMS 1004"})

	select {
	case msg := <-client.send:
		assert.Equal(t, "course.updated", msg.Type)
		assert.Equal(t, "COMS 1004", msg.Data)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient("test-2", hub, nil)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.send
	assert.False(t, ok)

	// a second unregister is harmless
	hub.Unregister(client)
}

func TestHubDisconnectsSlowClient(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient("slow", hub, nil)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < 2*cap(client.send); i++ {
		hub.Broadcast(Message{Type: "course.updated", Data: i})
		// keep the broadcast queue from overflowing before the hub drains it
		if i%32 == 0 {
			time.Sleep(time.Millisecond)
		}
	}

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := NewClient("test-3", hub, nil)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.ClientCount())
	_, ok := <-client.send
	assert.False(t, ok)
}

func TestBroadcastNeverBlocks(t *testing.T) {
	hub := newTestHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.broadcast)*2; i++ {
			hub.Broadcast(Message{Type: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked without a running hub")
	}
}

func TestClientID(t *testing.T) {
	c := NewClient("abc", newTestHub(), nil)
	assert.Equal(t, "abc", c.ID())
}

func TestHubStoppedNeverBlocks(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	const clients = 64
	done := make(chan struct{})
	sends := make([]chan Message, clients)
	go func() {
		for i := 0; i < clients; i++ {
			client := NewClient("late", hub, nil)
			sends[i] = client.send
			hub.Register(client)
			hub.Unregister(client)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Register or Unregister blocked on a stopped hub")
	}
	assert.Equal(t, 0, hub.ClientCount())
	for _, send := range sends {
		_, ok := <-send
		assert.False(t, ok)
	}
}
