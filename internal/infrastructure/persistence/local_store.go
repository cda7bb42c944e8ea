package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/sale"
	"github.com/akib4796/omnishop-manager-sub002/internal/domain/shared"
	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/persistence/models"
)

// OpenLocalDatabase opens the durable sqlite store backing the local
// cache and pending-sale queue, and migrates its schema
func OpenLocalDatabase(cfg config.LocalDBConfig, gl gormlogger.Interface) (*gorm.DB, error) {
	if gl == nil {
		gl = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:                 gl,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.PendingSaleModel{},
		&models.CachedProductModel{},
		&models.CachedCategoryModel{},
		&models.CachedCustomerModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate local database: %w", err)
	}

	return db, nil
}

// SQLiteLocalStore implements sale.LocalStore on a sqlite database.
// It owns the pending-sale queue and the cached reference collections.
type SQLiteLocalStore struct {
	db *gorm.DB
}

// NewSQLiteLocalStore creates a new SQLiteLocalStore
func NewSQLiteLocalStore(db *gorm.DB) *SQLiteLocalStore {
	return &SQLiteLocalStore{db: db}
}

// EnqueueSale appends a locally completed sale to the queue
func (s *SQLiteLocalStore) EnqueueSale(ctx context.Context, pending *sale.PendingSale) error {
	model := models.PendingSaleFromDomain(pending)
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("enqueue sale: %w", err)
	}
	return nil
}

// PendingSales returns only entries that have not been synced yet,
// oldest first
func (s *SQLiteLocalStore) PendingSales(ctx context.Context) ([]sale.PendingSale, error) {
	var rows []models.PendingSaleModel
	if err := s.db.WithContext(ctx).
		Where("synced = ?", false).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list pending sales: %w", err)
	}

	pending := make([]sale.PendingSale, 0, len(rows))
	for i := range rows {
		pending = append(pending, *rows[i].ToDomain())
	}
	return pending, nil
}

// MarkSaleSynced flips the entry's synced flag, exactly once.
// The flag is never flipped back and the entry is never deleted here.
func (s *SQLiteLocalStore) MarkSaleSynced(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&models.PendingSaleModel{}).
		Where("id = ? AND synced = ?", id, false).
		Updates(map[string]interface{}{
			"synced":    true,
			"synced_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("mark sale synced: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CacheProducts replaces the cached product collection wholesale
func (s *SQLiteLocalStore) CacheProducts(ctx context.Context, products []sale.Product) error {
	rows := make([]models.CachedProductModel, 0, len(products))
	for _, p := range products {
		rows = append(rows, models.CachedProductFromDomain(p))
	}
	return replaceAllRows(ctx, s.db, &models.CachedProductModel{}, rows)
}

// CacheCategories replaces the cached category collection wholesale
func (s *SQLiteLocalStore) CacheCategories(ctx context.Context, categories []sale.Category) error {
	rows := make([]models.CachedCategoryModel, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, models.CachedCategoryFromDomain(c))
	}
	return replaceAllRows(ctx, s.db, &models.CachedCategoryModel{}, rows)
}

// CacheCustomers replaces the cached customer collection wholesale
func (s *SQLiteLocalStore) CacheCustomers(ctx context.Context, customers []sale.Customer) error {
	rows := make([]models.CachedCustomerModel, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, models.CachedCustomerFromDomain(c))
	}
	return replaceAllRows(ctx, s.db, &models.CachedCustomerModel{}, rows)
}

// CachedProducts returns the cached product collection, ordered by name.
// This is what the register browses while offline.
func (s *SQLiteLocalStore) CachedProducts(ctx context.Context) ([]sale.Product, error) {
	var rows []models.CachedProductModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list cached products: %w", err)
	}

	products := make([]sale.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, nil
}

// CachedCategories returns the cached category collection, ordered by name
func (s *SQLiteLocalStore) CachedCategories(ctx context.Context) ([]sale.Category, error) {
	var rows []models.CachedCategoryModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list cached categories: %w", err)
	}

	categories := make([]sale.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain()
	}
	return categories, nil
}

// CachedCustomers returns the cached customer collection, ordered by name
func (s *SQLiteLocalStore) CachedCustomers(ctx context.Context) ([]sale.Customer, error) {
	var rows []models.CachedCustomerModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list cached customers: %w", err)
	}

	customers := make([]sale.Customer, len(rows))
	for i := range rows {
		customers[i] = rows[i].ToDomain()
	}
	return customers, nil
}

// UpdateCachedProductStock overwrites one cached product's stock projection
func (s *SQLiteLocalStore) UpdateCachedProductStock(ctx context.Context, productID uuid.UUID, newStock decimal.Decimal) error {
	result := s.db.WithContext(ctx).
		Model(&models.CachedProductModel{}).
		Where("id = ?", productID).
		Update("current_stock", newStock)
	if result.Error != nil {
		return fmt.Errorf("update cached stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// replaceAllRows swaps a cache table's contents in one transaction.
// The cache is disposable, so a wholesale delete-and-insert is enough.
func replaceAllRows[T any](ctx context.Context, db *gorm.DB, model interface{}, rows []T) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear cache table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("fill cache table: %w", err)
		}
		return nil
	})
}

// Ensure SQLiteLocalStore implements sale.LocalStore
var _ sale.LocalStore = (*SQLiteLocalStore)(nil)
