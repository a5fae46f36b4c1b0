package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
)

func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func CreateTables(db *sqlx.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          VARCHAR(36) PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			email       VARCHAR(255) NOT NULL,
			password    VARCHAR(255) NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			id           VARCHAR(36) PRIMARY KEY,
			requester_id VARCHAR(36) NOT NULL,
			recipient_id VARCHAR(36) NOT NULL,
			status       ENUM('pending', 'accepted', 'rejected') DEFAULT 'pending',
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_pair (requester_id, recipient_id),
			INDEX idx_recipient (recipient_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id           VARCHAR(36) PRIMARY KEY,
			sender_id    VARCHAR(36) NOT NULL,
			recipient_id VARCHAR(36) NOT NULL,
			text         TEXT NOT NULL,
			created_at   DATETIME(6) NOT NULL,
			INDEX idx_sender_time (sender_id, created_at),
			INDEX idx_recipient_time (recipient_id, created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id          VARCHAR(36) PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			email       VARCHAR(255),
			phone       VARCHAR(50),
			address     VARCHAR(255),
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id          VARCHAR(36) PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			sku         VARCHAR(50) NOT NULL,
			price       DECIMAL(12,2) NOT NULL DEFAULT 0,
			quantity    INT NOT NULL DEFAULT 0,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_sku (sku)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id          VARCHAR(36) PRIMARY KEY,
			customer_id VARCHAR(36) NOT NULL,
			total       DECIMAL(12,2) NOT NULL DEFAULT 0,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_customer (customer_id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id          VARCHAR(36) PRIMARY KEY,
			order_id    VARCHAR(36) NOT NULL,
			product_id  VARCHAR(36) NOT NULL,
			quantity    INT NOT NULL DEFAULT 1,
			INDEX idx_order (order_id)
		)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}
