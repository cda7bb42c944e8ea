package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akib4796/omnishop-manager-sub002/internal/domain/sale"
	"github.com/akib4796/omnishop-manager-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockRemoteStore creates a GormRemoteStore with a mocked SQL connection
func newMockRemoteStore(t *testing.T) (*GormRemoteStore, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormRemoteStore(gormDB), mock, mockDB
}

func testPendingSale(t *testing.T) sale.PendingSale {
	t.Helper()
	pending, err := sale.NewPendingSale(uuid.New(), sale.SaleData{
		Items: []sale.SaleItem{
			{ProductID: uuid.New(), Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
		},
		Total:  decimal.NewFromInt(100),
		Method: "CASH",
		SoldAt: time.Now(),
	})
	require.NoError(t, err)
	return *pending
}

func TestNewGormRemoteStore(t *testing.T) {
	t.Run("creates store with valid DB", func(t *testing.T) {
		store, _, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		assert.NotNil(t, store)
		assert.NotNil(t, store.db)
	})
}

func TestGormRemoteStore_InsertSyncedSale(t *testing.T) {
	t.Run("inserts new sale record", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		pending := testPendingSale(t)

		mock.ExpectExec(`INSERT INTO "sales" .* ON CONFLICT \("id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.InsertSyncedSale(context.Background(), pending)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replaying an already synced sale is a no-op", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		pending := testPendingSale(t)

		// the conflict clause swallows the duplicate, zero rows affected
		mock.ExpectExec(`INSERT INTO "sales" .* ON CONFLICT \("id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.InsertSyncedSale(context.Background(), pending)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates insert failure", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		pending := testPendingSale(t)

		mock.ExpectExec(`INSERT INTO "sales"`).
			WillReturnError(errors.New("connection reset"))

		err := store.InsertSyncedSale(context.Background(), pending)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRemoteStore_ProductStock(t *testing.T) {
	t.Run("reads stock for existing product", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "current_stock"}).
			AddRow(productID, decimal.NewFromInt(42))

		mock.ExpectQuery(`SELECT .* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		stock, err := store.ProductStock(context.Background(), productID)

		assert.NoError(t, err)
		assert.True(t, stock.Equal(decimal.NewFromInt(42)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown product", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT .* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := store.ProductStock(context.Background(), productID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRemoteStore_WriteProductStock(t *testing.T) {
	t.Run("overwrites stock level", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "current_stock"=\$1 WHERE id = \$2`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.WriteProductStock(context.Background(), productID, decimal.NewFromInt(17))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no row matched", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "current_stock"=\$1 WHERE id = \$2`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.WriteProductStock(context.Background(), productID, decimal.NewFromInt(17))

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRemoteStore_ListProducts(t *testing.T) {
	t.Run("joins category names when requested", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		productID := uuid.New()
		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "category_id", "price", "current_stock", "category_name"}).
			AddRow(productID, "Basmati Rice 5kg", categoryID, decimal.NewFromInt(650), decimal.NewFromInt(30), "Groceries")

		mock.ExpectQuery(`SELECT products\.id, products\.name, .* FROM "products" LEFT JOIN categories ON categories\.id = products\.category_id ORDER BY products\.name ASC`).
			WillReturnRows(rows)

		products, err := store.ListProducts(context.Background(), true)

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, productID, products[0].ID)
		assert.Equal(t, "Basmati Rice 5kg", products[0].Name)
		assert.Equal(t, "Groceries", products[0].CategoryName)
		assert.True(t, products[0].CurrentStock.Equal(decimal.NewFromInt(30)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips the join when category names are not needed", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "category_id", "price", "current_stock"}).
			AddRow(productID, "Soap Bar", uuid.New(), decimal.NewFromInt(45), decimal.NewFromInt(120))

		mock.ExpectQuery(`SELECT products\.id, products\.name, products\.category_id, products\.price, products\.current_stock FROM "products" ORDER BY products\.name ASC`).
			WillReturnRows(rows)

		products, err := store.ListProducts(context.Background(), false)

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Empty(t, products[0].CategoryName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when there are no products", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT .* FROM "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "price", "current_stock", "category_name"}))

		products, err := store.ListProducts(context.Background(), true)

		assert.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRemoteStore_ListCategories(t *testing.T) {
	t.Run("lists categories ordered by name", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.New(), "Groceries").
			AddRow(uuid.New(), "Toiletries")

		mock.ExpectQuery(`SELECT \* FROM "categories" ORDER BY name ASC`).
			WillReturnRows(rows)

		categories, err := store.ListCategories(context.Background())

		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Groceries", categories[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRemoteStore_ListCustomers(t *testing.T) {
	t.Run("lists customers with phone numbers", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(customerID, "Rahim Uddin", "01712345678")

		mock.ExpectQuery(`SELECT \* FROM "customers" ORDER BY name ASC`).
			WillReturnRows(rows)

		customers, err := store.ListCustomers(context.Background())

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, customerID, customers[0].ID)
		assert.Equal(t, "01712345678", customers[0].Phone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates query failure", func(t *testing.T) {
		store, mock, mockDB := newMockRemoteStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WillReturnError(errors.New("connection reset"))

		customers, err := store.ListCustomers(context.Background())

		assert.Error(t, err)
		assert.Nil(t, customers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
