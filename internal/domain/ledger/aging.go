package ledger

import (
	"sort"
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgingDirection selects which side of the ledger is being aged
type AgingDirection string

const (
	AgingDirectionReceivable AgingDirection = "RECEIVABLE" // Money owed to the business by customers
	AgingDirectionPayable    AgingDirection = "PAYABLE"    // Money the business owes suppliers
)

// IsValid checks if the aging direction is valid
func (d AgingDirection) IsValid() bool {
	return d == AgingDirectionReceivable || d == AgingDirectionPayable
}

// String returns the string representation of AgingDirection
func (d AgingDirection) String() string {
	return string(d)
}

// debitCategory returns the category that incurs debt for this direction.
// Only credit-method entries of this category age; cash entries are
// settled at the moment of the transaction.
func (d AgingDirection) debitCategory() Category {
	if d == AgingDirectionPayable {
		return CategoryPurchase
	}
	return CategorySale
}

// creditCategories returns the categories that reduce debt for this direction
func (d AgingDirection) creditCategories() []Category {
	if d == AgingDirectionPayable {
		return []Category{CategorySupplierPayment}
	}
	return []Category{CategoryCustomerPayment, CategoryAdjustmentCredit}
}

// incursDebt reports whether the entry adds to outstanding debt under this direction
func (d AgingDirection) incursDebt(e Entry) bool {
	return e.Category == d.debitCategory() && e.Method == MethodCredit
}

// reducesDebt reports whether the entry reduces outstanding debt under this direction
func (d AgingDirection) reducesDebt(e Entry) bool {
	for _, c := range d.creditCategories() {
		if e.Category == c {
			return true
		}
	}
	return false
}

// OutstandingInvoice is the unpaid remainder of one historical debit entry.
// It retains the origin date of the debt so age buckets are computed
// against when the debt was incurred, not when it was last touched.
type OutstandingInvoice struct {
	Amount     decimal.Decimal `json:"amount"`
	OriginDate time.Time       `json:"origin_date"`
}

// AgingRow is one counterparty's outstanding balance bucketed by age
type AgingRow struct {
	CounterpartyID uuid.UUID       `json:"counterparty_id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	TotalDue       decimal.Decimal `json:"total_due"`
	Bucket0To30    decimal.Decimal `json:"bucket_0_30"`
	Bucket31To60   decimal.Decimal `json:"bucket_31_60"`
	Bucket61To90   decimal.Decimal `json:"bucket_61_90"`
	Bucket90Plus   decimal.Decimal `json:"bucket_90_plus"`
}

// ComputeAging reconstructs outstanding balances per counterparty from the
// flat ledger and buckets them by age, as of the given reference time.
//
// Per counterparty, independently:
//  1. Debit entries are sorted ascending by date (stable, so entries
//     sharing a timestamp keep ledger insertion order).
//  2. All credit entries are summed into a single payment pool; payments
//     carry no per-invoice linkage and are allocated FIFO, oldest debt first.
//  3. Each debit's unpaid remainder becomes an outstanding invoice dated at
//     the original debit.
//  4. Remainders are bucketed by whole days outstanding.
//
// Counterparties with nothing due are excluded. The result is sorted
// descending by total due. The function performs no I/O and never mutates
// its inputs; identical inputs yield identical output.
func ComputeAging(entries []Entry, counterparties []Counterparty, direction AgingDirection, now time.Time) ([]AgingRow, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Aging direction is not valid")
	}

	rows := make([]AgingRow, 0, len(counterparties))

	for _, cp := range counterparties {
		outstanding := allocateFIFO(entries, cp.ID, direction)
		if len(outstanding) == 0 {
			continue
		}

		row := AgingRow{
			CounterpartyID: cp.ID,
			Name:           cp.Name,
			Phone:          cp.Phone,
			TotalDue:       decimal.Zero,
			Bucket0To30:    decimal.Zero,
			Bucket31To60:   decimal.Zero,
			Bucket61To90:   decimal.Zero,
			Bucket90Plus:   decimal.Zero,
		}

		for _, inv := range outstanding {
			days := wholeDaysBetween(inv.OriginDate, now)
			switch {
			case days <= 30:
				row.Bucket0To30 = row.Bucket0To30.Add(inv.Amount)
			case days <= 60:
				row.Bucket31To60 = row.Bucket31To60.Add(inv.Amount)
			case days <= 90:
				row.Bucket61To90 = row.Bucket61To90.Add(inv.Amount)
			default:
				row.Bucket90Plus = row.Bucket90Plus.Add(inv.Amount)
			}
			row.TotalDue = row.TotalDue.Add(inv.Amount)
		}

		if row.TotalDue.LessThanOrEqual(decimal.Zero) {
			continue
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalDue.GreaterThan(rows[j].TotalDue)
	})

	return rows, nil
}

// allocateFIFO walks one counterparty's debit entries oldest first and
// consumes the accumulated payment pool, returning the unpaid remainders
func allocateFIFO(entries []Entry, counterpartyID uuid.UUID, direction AgingDirection) []OutstandingInvoice {
	debits := make([]Entry, 0)
	pool := decimal.Zero

	for _, e := range entries {
		if e.CounterpartyID != counterpartyID {
			continue
		}
		if direction.incursDebt(e) {
			debits = append(debits, e)
		} else if direction.reducesDebt(e) {
			pool = pool.Add(e.Amount)
		}
	}

	sort.SliceStable(debits, func(i, j int) bool {
		return debits[i].Date.Before(debits[j].Date)
	})

	outstanding := make([]OutstandingInvoice, 0, len(debits))
	for _, debit := range debits {
		if pool.GreaterThanOrEqual(debit.Amount) {
			pool = pool.Sub(debit.Amount)
			continue
		}
		remainder := debit.Amount.Sub(pool)
		pool = decimal.Zero
		outstanding = append(outstanding, OutstandingInvoice{
			Amount:     remainder,
			OriginDate: debit.Date,
		})
	}

	return outstanding
}

// wholeDaysBetween returns the number of whole days from origin to now
func wholeDaysBetween(origin, now time.Time) int {
	if now.Before(origin) {
		return 0
	}
	return int(now.Sub(origin).Hours() / 24)
}
