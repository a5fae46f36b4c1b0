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

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type productStore struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) ProductStore {
	return &productStore{db: db}
}

func (s *productStore) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, `
		SELECT id, name, sku, price, quantity, created_at, updated_at
		FROM products ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *productStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.db.GetContext(ctx, &p, `
		SELECT id, name, sku, price, quantity, created_at, updated_at
		FROM products WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	now := time.Now()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, sku, price, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.SKU, p.Price, p.Quantity, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productStore) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	existing, err := s.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	_, err = s.db.ExecContext(ctx, `
		UPDATE products SET name = ?, sku = ?, price = ?, quantity = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.SKU, p.Price, p.Quantity, p.UpdatedAt, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
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
