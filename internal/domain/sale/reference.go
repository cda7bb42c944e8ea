package sale

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a locally cached snapshot of a remote product.
// CurrentStock is the only field the sync engine ever writes back locally,
// and only as a projection; the authoritative value always arrives with
// the next successful pull.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}

// Category is a cached snapshot of a remote product category
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Customer is a cached snapshot of a remote customer
type Customer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
}

// Principal is the authenticated identity a sync pass runs under
type Principal struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Username string    `json:"username"`
}
