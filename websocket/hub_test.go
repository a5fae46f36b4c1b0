package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{ID: "test", send: make(chan []byte, 16)}
}

func TestHubJoinAndLeave(t *testing.T) {
	hub := NewHub()
	c := newTestClient()

	hub.Join(c, "alice")
	assert.Equal(t, 1, hub.RoomSize("alice"))

	hub.Leave(c)
	assert.Equal(t, 0, hub.RoomSize("alice"))
}

func TestHubJoinMovesConnectionBetweenRooms(t *testing.T) {
	hub := NewHub()
	c := newTestClient()

	hub.Join(c, "alice")
	hub.Join(c, "bob")

	assert.Equal(t, 0, hub.RoomSize("alice"))
	assert.Equal(t, 1, hub.RoomSize("bob"))
}

func TestHubBroadcastReachesAllRoomMembers(t *testing.T) {
	hub := NewHub()
	first := newTestClient()
	second := newTestClient()
	outsider := newTestClient()

	hub.Join(first, "bob")
	hub.Join(second, "bob")
	hub.Join(outsider, "carol")

	hub.Broadcast("bob", []byte("hello"), nil)

	require.Len(t, first.send, 1)
	require.Len(t, second.send, 1)
	assert.Len(t, outsider.send, 0)
}

func TestHubBroadcastSkipsExceptedConnection(t *testing.T) {
	hub := NewHub()
	sender := newTestClient()
	other := newTestClient()

	hub.Join(sender, "bob")
	hub.Join(other, "bob")

	hub.Broadcast("bob", []byte("typing"), sender)

	assert.Len(t, sender.send, 0)
	require.Len(t, other.send, 1)
}

func TestHubBroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Broadcast("nobody", []byte("hello"), nil)
	assert.Equal(t, 0, hub.RoomSize("nobody"))
}
