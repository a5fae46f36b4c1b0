package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bizlink/events"
	"bizlink/logger"
	"bizlink/models"
	"bizlink/store"
	"bizlink/utils"
)

type FriendHandler struct {
	friends   store.FriendshipStore
	users     store.UserStore
	publisher events.Publisher
}

func NewFriendHandler(friends store.FriendshipStore, users store.UserStore, publisher events.Publisher) *FriendHandler {
	return &FriendHandler{friends: friends, users: users, publisher: publisher}
}

type SendRequestBody struct {
	SenderID       string `json:"senderId" binding:"required"`
	RecipientEmail string `json:"recipientEmail" binding:"required,email"`
}

type AcceptRequestBody struct {
	RequestID string `json:"requestId" binding:"required"`
}

// SendRequest resolves the recipient by email and creates a pending
// friendship. A record in either direction for the same pair blocks the
// request.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var body SendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	recipient, err := h.users.GetByEmail(ctx, body.RecipientEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "user with this email not found")
			return
		}
		utils.InternalError(c, "database error")
		return
	}

	if recipient.ID == body.SenderID {
		utils.BadRequest(c, "you cannot add yourself")
		return
	}

	exists, err := h.friends.ExistsPair(ctx, body.SenderID, recipient.ID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if exists {
		utils.BadRequest(c, "request already sent or error occurred")
		return
	}

	friendship, err := h.friends.CreateRequest(ctx, body.SenderID, recipient.ID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicatePair) {
			utils.BadRequest(c, "request already sent or error occurred")
			return
		}
		utils.InternalError(c, "failed to create friend request")
		return
	}

	h.publish(c, events.FriendRequestCreated, friendship)
	utils.Created(c, friendship)
}

// ListPending returns pending requests the user sent or received, each with
// both endpoint profiles expanded.
func (h *FriendHandler) ListPending(c *gin.Context) {
	userID := c.Param("userId")

	requests, err := h.friends.ListPending(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "failed to fetch pending requests")
		return
	}

	utils.Success(c, requests)
}

// ListAccepted returns the counterparty profile of every accepted friendship
// involving the user.
func (h *FriendHandler) ListAccepted(c *gin.Context) {
	userID := c.Param("userId")

	friendships, err := h.friends.ListAccepted(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "failed to fetch friends")
		return
	}

	friends := make([]models.UserProfile, 0, len(friendships))
	for i := range friendships {
		friends = append(friends, *friendships[i].Counterparty(userID))
	}

	utils.Success(c, friends)
}

func (h *FriendHandler) Accept(c *gin.Context) {
	var body AcceptRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	friendship, err := h.friends.Accept(c.Request.Context(), body.RequestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "friend request not found")
			return
		}
		utils.InternalError(c, "failed to accept request")
		return
	}

	h.publish(c, events.FriendRequestAccepted, friendship)
	utils.Success(c, friendship)
}

// ListEmails returns every registered email except the user's own, for the
// request-target autocomplete.
func (h *FriendHandler) ListEmails(c *gin.Context) {
	userID := c.Param("userId")

	emails, err := h.users.ListEmails(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "failed to fetch user emails")
		return
	}
	if emails == nil {
		emails = []string{}
	}

	utils.Success(c, emails)
}

func (h *FriendHandler) publish(c *gin.Context, routingKey string, payload any) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(c.Request.Context(), routingKey, payload); err != nil {
		logger.Warn("failed to publish event", "routingKey", routingKey, "error", err)
	}
}
