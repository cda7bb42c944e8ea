package models

import (
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingSaleModel is the persistence model for the local pending-sale queue
type PendingSaleModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Sale      SaleDataColumn `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	Synced    bool           `gorm:"not null;default:false;index"`
	SyncedAt  *time.Time
}

// TableName returns the table name for GORM
func (PendingSaleModel) TableName() string {
	return "pending_sales"
}

// ToDomain converts the persistence model to a domain PendingSale
func (m *PendingSaleModel) ToDomain() *sale.PendingSale {
	return &sale.PendingSale{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Sale:      sale.SaleData(m.Sale),
		CreatedAt: m.CreatedAt,
		Synced:    m.Synced,
		SyncedAt:  m.SyncedAt,
	}
}

// PendingSaleFromDomain converts a domain PendingSale to its persistence model
func PendingSaleFromDomain(p *sale.PendingSale) *PendingSaleModel {
	return &PendingSaleModel{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Sale:      SaleDataColumn(p.Sale),
		CreatedAt: p.CreatedAt,
		Synced:    p.Synced,
		SyncedAt:  p.SyncedAt,
	}
}

// CachedProductModel is the persistence model for locally cached products
type CachedProductModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(200);not null"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;index"`
	CategoryName string          `gorm:"type:varchar(200)"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (CachedProductModel) TableName() string {
	return "cached_products"
}

// ToDomain converts the persistence model to a domain Product
func (m *CachedProductModel) ToDomain() sale.Product {
	return sale.Product{
		ID:           m.ID,
		Name:         m.Name,
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		Price:        m.Price,
		CurrentStock: m.CurrentStock,
	}
}

// CachedProductFromDomain converts a domain Product to its persistence model
func CachedProductFromDomain(p sale.Product) CachedProductModel {
	return CachedProductModel{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Price:        p.Price,
		CurrentStock: p.CurrentStock,
	}
}

// CachedCategoryModel is the persistence model for locally cached categories
type CachedCategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (CachedCategoryModel) TableName() string {
	return "cached_categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CachedCategoryModel) ToDomain() sale.Category {
	return sale.Category{ID: m.ID, Name: m.Name}
}

// CachedCategoryFromDomain converts a domain Category to its persistence model
func CachedCategoryFromDomain(c sale.Category) CachedCategoryModel {
	return CachedCategoryModel{ID: c.ID, Name: c.Name}
}

// CachedCustomerModel is the persistence model for locally cached customers
type CachedCustomerModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(200);not null"`
	Phone string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (CachedCustomerModel) TableName() string {
	return "cached_customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CachedCustomerModel) ToDomain() sale.Customer {
	return sale.Customer{ID: m.ID, Name: m.Name, Phone: m.Phone}
}

// CachedCustomerFromDomain converts a domain Customer to its persistence model
func CachedCustomerFromDomain(c sale.Customer) CachedCustomerModel {
	return CachedCustomerModel{ID: c.ID, Name: c.Name, Phone: c.Phone}
}
