package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.done
	})
	return hub
}

func receive(t *testing.T, c *Client) WsMessage {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var msg WsMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return WsMessage{}
	}
}

func waitClosed(t *testing.T, c *Client) {
	t.Helper()
	select {
	case _, ok := <-c.send:
		require.False(t, ok, "expected closed channel")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for close")
	}
}

func TestHubDeliversOnlyToProjectRoom(t *testing.T) {
	hub := startHub(t)

	a := NewClient(hub, nil, "p1", "u1")
	b := NewClient(hub, nil, "p2", "u2")
	hub.Register(a)
	hub.Register(b)

	hub.Publish("p1", EventFilesReplaced, map[string]int{"nodes": 4})

	msg := receive(t, a)
	assert.Equal(t, EventFilesReplaced, msg.Type)
	assert.Equal(t, "p1", msg.ProjectID)
	assert.JSONEq(t, `{"nodes":4}`, string(msg.Payload))

	select {
	case <-b.send:
		t.Fatal("client of another project received the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubProjectDeletedClosesRoom(t *testing.T) {
	hub := startHub(t)

	a := NewClient(hub, nil, "p1", "u1")
	hub.Register(a)

	hub.Publish("p1", EventProjectDeleted, nil)

	msg := receive(t, a)
	assert.Equal(t, EventProjectDeleted, msg.Type)
	waitClosed(t, a)
}

func TestHubUnregister(t *testing.T) {
	hub := startHub(t)

	a := NewClient(hub, nil, "p1", "u1")
	hub.Register(a)
	hub.Unregister(a)
	waitClosed(t, a)

	// A second unregister of the same client is ignored.
	hub.Unregister(a)
}

func TestHubStopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	a := NewClient(hub, nil, "p1", "u1")
	hub.Register(a)
	cancel()
	waitClosed(t, a)
	<-hub.done

	// Publishing after shutdown does not block.
	hub.Publish("p1", EventFilesReplaced, nil)
}
