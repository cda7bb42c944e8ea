package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/sale"
)

// SaleDataColumn stores a sale.SaleData payload as a JSON column.
// It implements GORM's Scanner/Valuer so the payload travels as one blob.
type SaleDataColumn sale.SaleData

// Value implements driver.Valuer
func (c SaleDataColumn) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner
func (c *SaleDataColumn) Scan(value interface{}) error {
	if value == nil {
		*c = SaleDataColumn{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan SaleDataColumn: unsupported type")
	}

	if len(bytes) == 0 {
		*c = SaleDataColumn{}
		return nil
	}

	return json.Unmarshal(bytes, c)
}
