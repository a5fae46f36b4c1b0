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

type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

type customerStore struct {
	db *sqlx.DB
}

func NewCustomerStore(db *sqlx.DB) CustomerStore {
	return &customerStore{db: db}
}

func (s *customerStore) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.SelectContext(ctx, &customers, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM customers ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

func (s *customerStore) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	err := s.db.GetContext(ctx, &c, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM customers WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *customerStore) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	now := time.Now()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerStore) Update(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	existing, err := s.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	_, err = s.db.ExecContext(ctx, `
		UPDATE customers SET name = ?, email = ?, phone = ?, address = ?, updated_at = ?
		WHERE id = ?
	`, c.Name, c.Email, c.Phone, c.Address, c.UpdatedAt, c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
