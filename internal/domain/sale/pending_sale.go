package sale

import (
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem is one line of a recorded sale
type SaleItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleData is the payload of a completed point-of-sale transaction
type SaleData struct {
	Items      []SaleItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	CustomerID *uuid.UUID      `json:"customer_id,omitempty"`
	Method     string          `json:"method"`
	SoldAt     time.Time       `json:"sold_at"`
}

// PendingSale is a locally recorded sale awaiting remote confirmation.
// It is created the instant a sale completes, independent of connectivity,
// and mutated exactly once: Synced flips false to true after the remote
// store has accepted the sale. Entries are never deleted by the sync
// engine; retention is an external concern.
type PendingSale struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Sale      SaleData   `json:"sale"`
	CreatedAt time.Time  `json:"created_at"`
	Synced    bool       `json:"synced"`
	SyncedAt  *time.Time `json:"synced_at,omitempty"`
}

// NewPendingSale creates a queued sale entry
func NewPendingSale(tenantID uuid.UUID, data SaleData) (*PendingSale, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if len(data.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "Sale must have at least one item")
	}
	for _, item := range data.Items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ITEM", "Sale item product ID cannot be empty")
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Sale item quantity must be positive")
		}
	}
	if data.Total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale total must be positive")
	}

	return &PendingSale{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Sale:      data,
		CreatedAt: time.Now(),
		Synced:    false,
	}, nil
}

// MarkSynced records remote confirmation. The flag is one-way: marking an
// already synced entry again is rejected rather than re-applied.
func (p *PendingSale) MarkSynced(at time.Time) error {
	if p.Synced {
		return shared.NewDomainError("ALREADY_SYNCED", "Pending sale has already been synced")
	}
	p.Synced = true
	p.SyncedAt = &at
	return nil
}
