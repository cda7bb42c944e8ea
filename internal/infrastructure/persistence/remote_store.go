package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/sale"
	"github.com/akib4796/omnishop-manager-sub002/internal/domain/shared"
	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/persistence/models"
)

// OpenRemoteDatabase connects to the authoritative remote database and
// configures the connection pool
func OpenRemoteDatabase(cfg config.RemoteDBConfig, gl gormlogger.Interface) (*gorm.DB, error) {
	if gl == nil {
		gl = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gl,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping remote database: %w", err)
	}

	return db, nil
}

// GormRemoteStore implements sale.RemoteStore on the authoritative
// postgres database
type GormRemoteStore struct {
	db *gorm.DB
}

// NewGormRemoteStore creates a new GormRemoteStore
func NewGormRemoteStore(db *gorm.DB) *GormRemoteStore {
	return &GormRemoteStore{db: db}
}

// InsertSyncedSale writes a pending sale as a sale of record. A sale
// whose id already exists remotely is left untouched, so replaying a
// push after a crashed pass cannot double-book revenue.
func (s *GormRemoteStore) InsertSyncedSale(ctx context.Context, pending sale.PendingSale) error {
	model := models.SaleRecordFromPending(pending, time.Now().UTC())
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert synced sale: %w", err)
	}
	return nil
}

// ProductStock reads the current stock level of a product
func (s *GormRemoteStore) ProductStock(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var model models.ProductModel
	err := s.db.WithContext(ctx).
		Select("id", "current_stock").
		Where("id = ?", productID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to read product stock: %w", err)
	}
	return model.CurrentStock, nil
}

// WriteProductStock overwrites the stock level of a product
func (s *GormRemoteStore) WriteProductStock(ctx context.Context, productID uuid.UUID, stock decimal.Decimal) error {
	result := s.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Update("current_stock", stock)
	if result.Error != nil {
		return fmt.Errorf("failed to write product stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListProducts returns all remote products, optionally joined with
// their category names
func (s *GormRemoteStore) ListProducts(ctx context.Context, withCategory bool) ([]sale.Product, error) {
	var rows []models.ProductRow
	query := s.db.WithContext(ctx).Model(&models.ProductModel{})
	if withCategory {
		query = query.
			Select("products.id, products.name, products.category_id, products.price, products.current_stock, categories.name AS category_name").
			Joins("LEFT JOIN categories ON categories.id = products.category_id")
	} else {
		query = query.Select("products.id, products.name, products.category_id, products.price, products.current_stock")
	}
	if err := query.Order("products.name ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]sale.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, nil
}

// ListCategories returns all remote categories
func (s *GormRemoteStore) ListCategories(ctx context.Context) ([]sale.Category, error) {
	var rows []models.CategoryModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]sale.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain()
	}
	return categories, nil
}

// ListCustomers returns all remote customers
func (s *GormRemoteStore) ListCustomers(ctx context.Context) ([]sale.Customer, error) {
	var rows []models.CustomerModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]sale.Customer, len(rows))
	for i := range rows {
		customers[i] = rows[i].ToDomain()
	}
	return customers, nil
}

// Ensure interface compliance
var _ sale.RemoteStore = (*GormRemoteStore)(nil)
