package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether status belongs to the enum. Updates with
// anything else are rejected outright rather than silently ignored.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot of a cart at placement time. TotalPrice
// equals the sum of its items' price times quantity as of creation.
type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	Items      []OrderItem     `json:"items,omitempty"`
}

// OrderItem keeps the game price captured at order time, independent of
// later catalog price changes.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	GameID    string          `json:"gameId"`
	GameTitle string          `json:"gameTitle,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
