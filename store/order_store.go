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

type OrderStore interface {
	List(ctx context.Context) ([]models.OrderDetail, error)
	GetByID(ctx context.Context, id string) (*models.OrderDetail, error)
	Create(ctx context.Context, customerID string, total float64, items []models.OrderItem) (*models.OrderDetail, error)
	Update(ctx context.Context, id, customerID string, total float64) (*models.OrderDetail, error)
	Delete(ctx context.Context, id string) error
}

type orderStore struct {
	db *sqlx.DB
}

func NewOrderStore(db *sqlx.DB) OrderStore {
	return &orderStore{db: db}
}

func (s *orderStore) List(ctx context.Context) ([]models.OrderDetail, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, `
		SELECT id, customer_id, total, created_at, updated_at
		FROM orders ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}

	details := make([]models.OrderDetail, 0, len(orders))
	for i := range orders {
		detail, err := s.expand(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *orderStore) GetByID(ctx context.Context, id string) (*models.OrderDetail, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, `
		SELECT id, customer_id, total, created_at, updated_at
		FROM orders WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, &order)
}

func (s *orderStore) Create(ctx context.Context, customerID string, total float64, items []models.OrderItem) (*models.OrderDetail, error) {
	now := time.Now()
	order := models.Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Total:      total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, total, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, order.ID, order.CustomerID, order.Total, order.CreatedAt, order.UpdatedAt); err != nil {
		tx.Rollback()
		return nil, err
	}

	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].OrderID = order.ID
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity)
			VALUES (?, ?, ?, ?)
		`, items[i].ID, items[i].OrderID, items[i].ProductID, items[i].Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.expand(ctx, &order)
}

func (s *orderStore) Update(ctx context.Context, id, customerID string, total float64) (*models.OrderDetail, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if _, err := s.db.ExecContext(ctx, `
		UPDATE orders SET customer_id = ?, total = ?, updated_at = ? WHERE id = ?
	`, customerID, total, now, id); err != nil {
		return nil, err
	}

	existing.CustomerID = customerID
	existing.Total = total
	existing.UpdatedAt = now
	return s.expand(ctx, &existing.Order)
}

func (s *orderStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *orderStore) expand(ctx context.Context, order *models.Order) (*models.OrderDetail, error) {
	detail := &models.OrderDetail{Order: *order, Items: []models.OrderItem{}}

	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM customers WHERE id = ?
	`, order.CustomerID)
	if err == nil {
		detail.Customer = &customer
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &detail.Items, `
		SELECT id, order_id, product_id, quantity
		FROM order_items WHERE order_id = ?
	`, order.ID); err != nil {
		return nil, err
	}

	return detail, nil
}
