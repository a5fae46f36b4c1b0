package models

import "time"

type Order struct {
	ID         string    `db:"id" json:"id"`
	CustomerID string    `db:"customer_id" json:"customerId"`
	Total      float64   `db:"total" json:"total"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	ID        string `db:"id" json:"id"`
	OrderID   string `db:"order_id" json:"orderId"`
	ProductID string `db:"product_id" json:"productId"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// OrderDetail is an order expanded with its customer and line items for reads.
type OrderDetail struct {
	Order
	Customer *Customer   `json:"customer,omitempty"`
	Items    []OrderItem `json:"items"`
}
