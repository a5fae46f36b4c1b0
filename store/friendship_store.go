package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizlink/models"
)

type FriendshipStore interface {
	CreateRequest(ctx context.Context, requesterID, recipientID string) (*models.Friendship, error)
	GetByID(ctx context.Context, id string) (*models.Friendship, error)
	Accept(ctx context.Context, id string) (*models.Friendship, error)
	ExistsPair(ctx context.Context, userA, userB string) (bool, error)
	HasAccepted(ctx context.Context, userA, userB string) (bool, error)
	ListPending(ctx context.Context, userID string) ([]models.FriendshipWithUsers, error)
	ListAccepted(ctx context.Context, userID string) ([]models.FriendshipWithUsers, error)
}

type friendshipStore struct {
	db *sqlx.DB
}

func NewFriendshipStore(db *sqlx.DB) FriendshipStore {
	return &friendshipStore{db: db}
}

func (s *friendshipStore) CreateRequest(ctx context.Context, requesterID, recipientID string) (*models.Friendship, error) {
	now := time.Now()
	f := &models.Friendship{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.FriendshipPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO friendships (id, requester_id, recipient_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, f.ID, f.RequesterID, f.RecipientID, f.Status, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicatePair
		}
		return nil, err
	}

	return f, nil
}

func (s *friendshipStore) GetByID(ctx context.Context, id string) (*models.Friendship, error) {
	var f models.Friendship
	err := s.db.GetContext(ctx, &f, `
		SELECT id, requester_id, recipient_id, status, created_at, updated_at
		FROM friendships WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Accept marks the friendship accepted and returns the updated record.
// Accepting an already-accepted record is a no-op update, not an error, so
// existence is checked with a read first; MySQL reports zero rows affected
// when an UPDATE leaves values unchanged.
func (s *friendshipStore) Accept(ctx context.Context, id string) (*models.Friendship, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if _, err := s.db.ExecContext(ctx, `
		UPDATE friendships SET status = ?, updated_at = ? WHERE id = ?
	`, models.FriendshipAccepted, now, id); err != nil {
		return nil, err
	}

	f.Status = models.FriendshipAccepted
	f.UpdatedAt = now
	return f, nil
}

func (s *friendshipStore) ExistsPair(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE (requester_id = ? AND recipient_id = ?)
			   OR (requester_id = ? AND recipient_id = ?)
		)
	`, userA, userB, userB, userA)
	return exists, err
}

func (s *friendshipStore) HasAccepted(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE status = 'accepted'
			  AND ((requester_id = ? AND recipient_id = ?)
			    OR (requester_id = ? AND recipient_id = ?))
		)
	`, userA, userB, userB, userA)
	return exists, err
}

type friendshipRow struct {
	models.Friendship
	RequesterName  string `db:"requester_name"`
	RequesterEmail string `db:"requester_email"`
	RecipientName  string `db:"recipient_name"`
	RecipientEmail string `db:"recipient_email"`
}

func (r *friendshipRow) expand() models.FriendshipWithUsers {
	return models.FriendshipWithUsers{
		Friendship: r.Friendship,
		Requester: models.UserProfile{
			ID:    r.RequesterID,
			Name:  r.RequesterName,
			Email: r.RequesterEmail,
		},
		Recipient: models.UserProfile{
			ID:    r.RecipientID,
			Name:  r.RecipientName,
			Email: r.RecipientEmail,
		},
	}
}

func (s *friendshipStore) ListPending(ctx context.Context, userID string) ([]models.FriendshipWithUsers, error) {
	return s.listByStatus(ctx, userID, models.FriendshipPending)
}

func (s *friendshipStore) ListAccepted(ctx context.Context, userID string) ([]models.FriendshipWithUsers, error) {
	return s.listByStatus(ctx, userID, models.FriendshipAccepted)
}

func (s *friendshipStore) listByStatus(ctx context.Context, userID, status string) ([]models.FriendshipWithUsers, error) {
	var rows []friendshipRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT f.id, f.requester_id, f.recipient_id, f.status, f.created_at, f.updated_at,
		       req.name AS requester_name, req.email AS requester_email,
		       rec.name AS recipient_name, rec.email AS recipient_email
		FROM friendships f
		JOIN users req ON req.id = f.requester_id
		JOIN users rec ON rec.id = f.recipient_id
		WHERE f.status = ? AND (f.requester_id = ? OR f.recipient_id = ?)
		ORDER BY f.created_at
	`, status, userID, userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.FriendshipWithUsers, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].expand())
	}
	return result, nil
}
