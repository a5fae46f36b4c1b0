package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizlink/models"
)

type MessageStore interface {
	Create(ctx context.Context, senderID, recipientID, text string) (*models.Message, error)
	HistoryFor(ctx context.Context, userID string) ([]models.Message, error)
}

type messageStore struct {
	db *sqlx.DB
}

func NewMessageStore(db *sqlx.DB) MessageStore {
	return &messageStore{db: db}
}

func (s *messageStore) Create(ctx context.Context, senderID, recipientID, text string) (*models.Message, error) {
	m := &models.Message{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender_id, recipient_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.SenderID, m.RecipientID, m.Text, m.CreatedAt)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// HistoryFor returns every message the user sent or received, oldest first.
// Ties on created_at fall back to id so replay order is stable.
func (s *messageStore) HistoryFor(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.SelectContext(ctx, &messages, `
		SELECT id, sender_id, recipient_id, text, created_at
		FROM messages
		WHERE sender_id = ? OR recipient_id = ?
		ORDER BY created_at ASC, id ASC
	`, userID, userID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
