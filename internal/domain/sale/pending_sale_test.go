package sale

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSaleData() SaleData {
	return SaleData{
		Items: []SaleItem{
			{ProductID: uuid.New(), Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(25)},
		},
		Total:  decimal.NewFromInt(50),
		Method: "CASH",
		SoldAt: time.Now(),
	}
}

func TestNewPendingSale(t *testing.T) {
	t.Run("creates unsynced entry", func(t *testing.T) {
		p, err := NewPendingSale(uuid.New(), validSaleData())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.False(t, p.Synced)
		assert.Nil(t, p.SyncedAt)
	})

	t.Run("rejects empty tenant", func(t *testing.T) {
		_, err := NewPendingSale(uuid.Nil, validSaleData())
		assert.Error(t, err)
	})

	t.Run("rejects sale without items", func(t *testing.T) {
		data := validSaleData()
		data.Items = nil
		_, err := NewPendingSale(uuid.New(), data)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		data := validSaleData()
		data.Items[0].Quantity = decimal.Zero
		_, err := NewPendingSale(uuid.New(), data)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		data := validSaleData()
		data.Total = decimal.NewFromInt(-1)
		_, err := NewPendingSale(uuid.New(), data)
		assert.Error(t, err)
	})
}

func TestPendingSale_MarkSynced(t *testing.T) {
	t.Run("flips the flag exactly once", func(t *testing.T) {
		p, err := NewPendingSale(uuid.New(), validSaleData())
		require.NoError(t, err)

		at := time.Now()
		require.NoError(t, p.MarkSynced(at))
		assert.True(t, p.Synced)
		require.NotNil(t, p.SyncedAt)
		assert.True(t, p.SyncedAt.Equal(at))

		assert.Error(t, p.MarkSynced(time.Now()), "second mark must be rejected")
	})
}
