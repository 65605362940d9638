package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of a paid order.
type OrderItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Payment records a completed (simulated) payment. Append-only: there is no
// lifecycle beyond creation.
type Payment struct {
	ID            int64           `json:"id"` // millisecond timestamp at creation
	UserID        int             `json:"userId"`
	UserName      string          `json:"userName"`
	Order         []OrderItem     `json:"order"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	TableNumber   int             `json:"tableNumber"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

const PaymentStatusCompleted = "completed"
