package ledger

import (
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction represents the cash direction of a ledger entry
type Direction string

const (
	DirectionInflow  Direction = "INFLOW"  // Money coming into the business
	DirectionOutflow Direction = "OUTFLOW" // Money leaving the business
)

// IsValid checks if the direction is a valid Direction
func (d Direction) IsValid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// Category represents the business meaning of a ledger entry
type Category string

const (
	CategorySale             Category = "SALE"
	CategoryPurchase         Category = "PURCHASE"
	CategoryCustomerPayment  Category = "CUSTOMER_PAYMENT"
	CategorySupplierPayment  Category = "SUPPLIER_PAYMENT"
	CategoryAdjustmentCredit Category = "ADJUSTMENT_CREDIT"
)

// IsValid checks if the category is a valid Category
func (c Category) IsValid() bool {
	switch c {
	case CategorySale, CategoryPurchase, CategoryCustomerPayment,
		CategorySupplierPayment, CategoryAdjustmentCredit:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// AllCategories returns all valid ledger categories
func AllCategories() []Category {
	return []Category{
		CategorySale,
		CategoryPurchase,
		CategoryCustomerPayment,
		CategorySupplierPayment,
		CategoryAdjustmentCredit,
	}
}

// Method represents how a transaction was settled
type Method string

const (
	MethodCash   Method = "CASH"   // Settled immediately, never ages
	MethodCredit Method = "CREDIT" // Settled later, subject to aging
)

// IsValid checks if the method is a valid Method
func (m Method) IsValid() bool {
	return m == MethodCash || m == MethodCredit
}

// String returns the string representation of Method
func (m Method) String() string {
	return string(m)
}

// Entry is one immutable financial fact in the append-only ledger.
// Entries are never mutated or deleted after creation; all derived state
// (balances, aging) is reconstructed by replaying the ledger.
type Entry struct {
	ID             uuid.UUID       `json:"id"`
	Direction      Direction       `json:"direction"`
	Category       Category        `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	CounterpartyID uuid.UUID       `json:"counterparty_id"`
	Method         Method          `json:"method"`
}

// NewEntry creates a validated ledger entry
func NewEntry(
	direction Direction,
	category Category,
	amount decimal.Decimal,
	date time.Time,
	counterpartyID uuid.UUID,
	method Method,
) (*Entry, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Direction is not valid")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date cannot be zero")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Method is not valid")
	}

	return &Entry{
		ID:             uuid.New(),
		Direction:      direction,
		Category:       category,
		Amount:         amount,
		Date:           date,
		CounterpartyID: counterpartyID,
		Method:         method,
	}, nil
}
