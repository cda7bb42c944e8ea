package models

import (
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecordModel is the persistence model for synced sales of record
// in the remote authoritative database
type SaleRecordModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Sale      SaleDataColumn `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	SyncedAt  time.Time      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleRecordModel) TableName() string {
	return "sales"
}

// SaleRecordFromPending converts a pending sale into its remote record
func SaleRecordFromPending(p sale.PendingSale, syncedAt time.Time) *SaleRecordModel {
	return &SaleRecordModel{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Sale:      SaleDataColumn(p.Sale),
		CreatedAt: p.CreatedAt,
		SyncedAt:  syncedAt,
	}
}

// ProductModel is the persistence model for remote products
type ProductModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(200);not null"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;index"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ProductRow is the scan target for product listings, optionally joined
// with the category name
type ProductRow struct {
	ID           uuid.UUID
	Name         string
	CategoryID   uuid.UUID
	CategoryName string
	Price        decimal.Decimal
	CurrentStock decimal.Decimal
}

// ToDomain converts the row to a domain Product
func (r *ProductRow) ToDomain() sale.Product {
	return sale.Product{
		ID:           r.ID,
		Name:         r.Name,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Price:        r.Price,
		CurrentStock: r.CurrentStock,
	}
}

// CategoryModel is the persistence model for remote categories
type CategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() sale.Category {
	return sale.Category{ID: m.ID, Name: m.Name}
}

// CustomerModel is the persistence model for remote customers
type CustomerModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(200);not null"`
	Phone string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() sale.Customer {
	return sale.Customer{ID: m.ID, Name: m.Name, Phone: m.Phone}
}
