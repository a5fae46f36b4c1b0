package websocket

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bizlink/events"
	"bizlink/logger"
	"bizlink/mocks"
	"bizlink/models"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestGateway(friends *mocks.MockFriendshipStore, messages *mocks.MockMessageStore, publisher *mocks.MockPublisher) *Gateway {
	var pub events.Publisher
	if publisher != nil {
		pub = publisher
	}
	return NewGateway(friends, messages, pub)
}

func connect(g *Gateway) *Client {
	return &Client{ID: "conn", gateway: g, send: make(chan []byte, 16)}
}

func receiveEvent(t *testing.T, c *Client) ServerEvent {
	t.Helper()
	select {
	case data := <-c.send:
		var event ServerEvent
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected an event but none was delivered")
		return ServerEvent{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("expected no event, got %s", data)
	default:
	}
}

func decodeData(t *testing.T, event ServerEvent, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(event.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestJoinRoomReplaysHistoryOnce(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)

	history := []models.Message{
		{ID: "m1", SenderID: "bob", RecipientID: "alice", Text: "hey", CreatedAt: time.Now().Add(-time.Minute)},
		{ID: "m2", SenderID: "alice", RecipientID: "bob", Text: "hi", CreatedAt: time.Now()},
	}
	messages.On("HistoryFor", mock.Anything, "alice").Return(history, nil)

	g := newTestGateway(friends, messages, nil)
	c := connect(g)

	c.handleMessage([]byte(`{"action":"join_room","data":"alice"}`))

	event := receiveEvent(t, c)
	require.Equal(t, "load_history", event.Event)

	var got []models.Message
	decodeData(t, event, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)

	assertNoEvent(t, c)
	assert.Equal(t, 1, g.Hub().RoomSize("alice"))
}

func TestJoinRoomAcceptsNestedObjectID(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)
	messages.On("HistoryFor", mock.Anything, "alice").Return([]models.Message{}, nil)

	g := newTestGateway(friends, messages, nil)
	c := connect(g)

	c.handleMessage([]byte(`{"action":"join_room","data":{"_id":"alice"}}`))

	event := receiveEvent(t, c)
	assert.Equal(t, "load_history", event.Event)
	assert.Equal(t, 1, g.Hub().RoomSize("alice"))
}

func TestJoinRoomWithEmptyIDIgnored(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)

	g := newTestGateway(friends, messages, nil)
	c := connect(g)

	c.handleMessage([]byte(`{"action":"join_room","data":""}`))

	assertNoEvent(t, c)
	messages.AssertNotCalled(t, "HistoryFor", mock.Anything, mock.Anything)
}

func TestJoinRoomHistoryFailureKeepsConnectionJoined(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)
	messages.On("HistoryFor", mock.Anything, "alice").Return(nil, errors.New("db down"))

	g := newTestGateway(friends, messages, nil)
	c := connect(g)

	c.handleMessage([]byte(`{"action":"join_room","data":"alice"}`))

	assertNoEvent(t, c)
	assert.Equal(t, 1, g.Hub().RoomSize("alice"))
}

func TestSendMessageBetweenFriendsDeliversToRecipientRoom(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)
	publisher := new(mocks.MockPublisher)

	friends.On("HasAccepted", mock.Anything, "alice", "bob").Return(true, nil)
	stored := &models.Message{ID: "m1", SenderID: "alice", RecipientID: "bob", Text: "hi", CreatedAt: time.Now()}
	messages.On("Create", mock.Anything, "alice", "bob", "hi").Return(stored, nil)
	publisher.On("Publish", mock.Anything, events.ChatMessageCreated, stored).Return(nil)

	g := newTestGateway(friends, messages, publisher)

	sender := connect(g)
	recipient := connect(g)
	recipientSecond := connect(g)
	g.Hub().Join(sender, "alice")
	g.Hub().Join(recipient, "bob")
	g.Hub().Join(recipientSecond, "bob")

	sender.handleMessage([]byte(`{"action":"send_message","data":{"senderId":"alice","recipientId":"bob","text":"hi"}}`))

	for _, c := range []*Client{recipient, recipientSecond} {
		event := receiveEvent(t, c)
		require.Equal(t, "receive_message", event.Event)

		var got models.Message
		decodeData(t, event, &got)
		assert.Equal(t, "alice", got.SenderID)
		assert.Equal(t, "bob", got.RecipientID)
		assert.Equal(t, "hi", got.Text)
	}

	// sender renders its own message optimistically, nothing comes back
	assertNoEvent(t, sender)

	messages.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSendMessageBetweenNonFriendsSilentlyDropped(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)

	friends.On("HasAccepted", mock.Anything, "alice", "bob").Return(false, nil)

	g := newTestGateway(friends, messages, nil)

	sender := connect(g)
	recipient := connect(g)
	g.Hub().Join(sender, "alice")
	g.Hub().Join(recipient, "bob")

	sender.handleMessage([]byte(`{"action":"send_message","data":{"senderId":"alice","recipientId":"bob","text":"hi"}}`))

	assertNoEvent(t, sender)
	assertNoEvent(t, recipient)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessageNormalizesNestedIDs(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)

	friends.On("HasAccepted", mock.Anything, "alice", "bob").Return(true, nil)
	stored := &models.Message{ID: "m1", SenderID: "alice", RecipientID: "bob", Text: "hi"}
	messages.On("Create", mock.Anything, "alice", "bob", "hi").Return(stored, nil)

	g := newTestGateway(friends, messages, nil)
	sender := connect(g)

	sender.handleMessage([]byte(`{"action":"send_message","data":{"senderId":{"_id":"alice"},"recipientId":{"id":"bob"},"text":"hi"}}`))

	friends.AssertCalled(t, "HasAccepted", mock.Anything, "alice", "bob")
	messages.AssertCalled(t, "Create", mock.Anything, "alice", "bob", "hi")
}

func TestSendMessageStoreFailureKeepsConnectionAlive(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)

	friends.On("HasAccepted", mock.Anything, "alice", "bob").Return(true, nil)
	messages.On("Create", mock.Anything, "alice", "bob", "hi").Return(nil, errors.New("db down"))

	g := newTestGateway(friends, messages, nil)

	sender := connect(g)
	recipient := connect(g)
	g.Hub().Join(sender, "alice")
	g.Hub().Join(recipient, "bob")

	sender.handleMessage([]byte(`{"action":"send_message","data":{"senderId":"alice","recipientId":"bob","text":"hi"}}`))

	assertNoEvent(t, recipient)
	assert.Equal(t, 1, g.Hub().RoomSize("alice"))
}

func TestTypingForwardedToRecipientRoom(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)

	g := newTestGateway(friends, messages, nil)

	sender := connect(g)
	recipient := connect(g)
	g.Hub().Join(sender, "alice")
	g.Hub().Join(recipient, "bob")

	sender.handleMessage([]byte(`{"action":"typing","data":{"senderId":"alice","recipientId":"bob","isTyping":true}}`))

	event := receiveEvent(t, recipient)
	require.Equal(t, "user_typing", event.Event)

	var got TypingPayload
	decodeData(t, event, &got)
	assert.Equal(t, UserRef("alice"), got.SenderID)
	assert.True(t, got.IsTyping)

	// no friendship check for typing indicators
	friends.AssertNotCalled(t, "HasAccepted", mock.Anything, mock.Anything, mock.Anything)
	assertNoEvent(t, sender)
}

func TestTypingSkipsSendersOwnConnection(t *testing.T) {
	friends := new(mocks.MockFriendshipStore)
	messages := new(mocks.MockMessageStore)

	g := newTestGateway(friends, messages, nil)

	// both connections sit in bob's room; the typing one must not hear itself
	typist := connect(g)
	otherDevice := connect(g)
	g.Hub().Join(typist, "bob")
	g.Hub().Join(otherDevice, "bob")

	typist.handleMessage([]byte(`{"action":"typing","data":{"senderId":"bob","recipientId":"bob","isTyping":true}}`))

	assertNoEvent(t, typist)
	event := receiveEvent(t, otherDevice)
	assert.Equal(t, "user_typing", event.Event)
}

func TestPingRespondsWithPong(t *testing.T) {
	g := newTestGateway(new(mocks.MockFriendshipStore), new(mocks.MockMessageStore), nil)
	c := connect(g)

	c.handleMessage([]byte(`{"action":"ping"}`))

	event := receiveEvent(t, c)
	assert.Equal(t, "pong", event.Event)
}

func TestMalformedEnvelopeIgnored(t *testing.T) {
	g := newTestGateway(new(mocks.MockFriendshipStore), new(mocks.MockMessageStore), nil)
	c := connect(g)

	c.handleMessage([]byte(`not json`))
	c.handleMessage([]byte(`{"action":"send_message","data":"not an object"}`))

	assertNoEvent(t, c)
}
