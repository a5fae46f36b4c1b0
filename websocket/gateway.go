package websocket

import (
	"context"
	"encoding/json"

	"bizlink/events"
	"bizlink/logger"
	"bizlink/store"
)

// Gateway routes realtime events between connections, gating message sends on
// an accepted friendship and replaying history on join.
type Gateway struct {
	hub       *Hub
	friends   store.FriendshipStore
	messages  store.MessageStore
	publisher events.Publisher
}

func NewGateway(friends store.FriendshipStore, messages store.MessageStore, publisher events.Publisher) *Gateway {
	return &Gateway{
		hub:       NewHub(),
		friends:   friends,
		messages:  messages,
		publisher: publisher,
	}
}

func (g *Gateway) Hub() *Hub {
	return g.hub
}

// ClientEvent is the inbound envelope.
type ClientEvent struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// ServerEvent is the outbound envelope.
type ServerEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func marshalEvent(event string, data interface{}) ([]byte, error) {
	return json.Marshal(&ServerEvent{Event: event, Data: data})
}

// UserRef is a user identifier that clients may send either as a raw string
// or as a nested object carrying an "_id" or "id" field. It normalizes to the
// canonical string form at the gateway boundary.
type UserRef string

func (r *UserRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = UserRef(s)
		return nil
	}

	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.MongoID != "" {
		*r = UserRef(obj.MongoID)
	} else {
		*r = UserRef(obj.ID)
	}
	return nil
}

func (r UserRef) String() string { return string(r) }

type TypingPayload struct {
	SenderID    UserRef `json:"senderId"`
	RecipientID UserRef `json:"recipientId"`
	IsTyping    bool    `json:"isTyping"`
}

type SendMessagePayload struct {
	SenderID    UserRef `json:"senderId"`
	RecipientID UserRef `json:"recipientId"`
	Text        string  `json:"text"`
}

// handleJoin puts the connection into the room named by the user id and
// replays the user's full message history to this connection only.
func (g *Gateway) handleJoin(ctx context.Context, c *Client, data json.RawMessage) {
	var userID UserRef
	if err := json.Unmarshal(data, &userID); err != nil || userID == "" {
		return
	}

	roomID := userID.String()
	g.hub.Join(c, roomID)

	history, err := g.messages.HistoryFor(ctx, roomID)
	if err != nil {
		logger.Error("failed to load message history", "userId", roomID, "error", err)
		return
	}

	payload, err := marshalEvent("load_history", history)
	if err != nil {
		logger.Error("failed to encode history", "userId", roomID, "error", err)
		return
	}
	c.enqueue(payload)
}

// handleTyping forwards the indicator to the recipient's room. No
// persistence and no friendship check; the actual message send is gated.
func (g *Gateway) handleTyping(c *Client, data json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.RecipientID == "" {
		return
	}

	out, err := marshalEvent("user_typing", payload)
	if err != nil {
		return
	}
	g.hub.Broadcast(payload.RecipientID.String(), out, c)
}

// handleSendMessage persists and delivers a message if the sender and
// recipient have an accepted friendship in either direction. Unauthorized
// sends are dropped without any response so friendship state cannot be probed
// through error replies.
func (g *Gateway) handleSendMessage(ctx context.Context, c *Client, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	senderID := payload.SenderID.String()
	recipientID := payload.RecipientID.String()
	if senderID == "" || recipientID == "" {
		return
	}

	accepted, err := g.friends.HasAccepted(ctx, senderID, recipientID)
	if err != nil {
		logger.Error("failed to check friendship", "senderId", senderID, "recipientId", recipientID, "error", err)
		return
	}
	if !accepted {
		logger.Debug("blocked message between non-friends", "senderId", senderID, "recipientId", recipientID)
		return
	}

	message, err := g.messages.Create(ctx, senderID, recipientID, payload.Text)
	if err != nil {
		logger.Error("failed to persist message", "senderId", senderID, "recipientId", recipientID, "error", err)
		return
	}

	if g.publisher != nil {
		if err := g.publisher.Publish(ctx, events.ChatMessageCreated, message); err != nil {
			logger.Warn("failed to publish message event", "messageId", message.ID, "error", err)
		}
	}

	out, err := marshalEvent("receive_message", message)
	if err != nil {
		logger.Error("failed to encode message", "messageId", message.ID, "error", err)
		return
	}
	g.hub.Broadcast(recipientID, out, nil)
}
