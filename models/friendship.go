package models

import "time"

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipRejected = "rejected"
)

type Friendship struct {
	ID          string    `db:"id" json:"id"`
	RequesterID string    `db:"requester_id" json:"requesterId"`
	RecipientID string    `db:"recipient_id" json:"recipientId"`
	Status      string    `db:"status" json:"status"` // pending, accepted, rejected
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// FriendshipWithUsers is a friendship record expanded with both endpoint
// profiles, as returned by the pending-requests listing.
type FriendshipWithUsers struct {
	Friendship
	Requester UserProfile `json:"requester"`
	Recipient UserProfile `json:"recipient"`
}

// Counterparty returns the endpoint of the friendship that is not userID.
func (f *FriendshipWithUsers) Counterparty(userID string) *UserProfile {
	if f.RequesterID == userID {
		return &f.Recipient
	}
	return &f.Requester
}
