package report

import (
	"time"

	"github.com/akib4796/omnishop-manager-sub002/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AgingTotals is the presentation-level totals row summing every bucket
// across all rows. It is derived from the rows alone, so any caller can
// reproduce it deterministically.
type AgingTotals struct {
	TotalDue     decimal.Decimal `json:"total_due"`
	Bucket0To30  decimal.Decimal `json:"bucket_0_30"`
	Bucket31To60 decimal.Decimal `json:"bucket_31_60"`
	Bucket61To90 decimal.Decimal `json:"bucket_61_90"`
	Bucket90Plus decimal.Decimal `json:"bucket_90_plus"`
}

// AgingReport is the full aging report surface: per-counterparty rows
// sorted descending by total due, plus the totals row
type AgingReport struct {
	Direction ledger.AgingDirection `json:"direction"`
	AsOf      time.Time             `json:"as_of"`
	Rows      []ledger.AgingRow     `json:"rows"`
	Totals    AgingTotals           `json:"totals"`
}

// AgingService builds receivable and payable aging reports from
// materialized ledger data
type AgingService struct {
	logger *zap.Logger
}

// NewAgingService creates a new aging report service
func NewAgingService(logger *zap.Logger) *AgingService {
	return &AgingService{logger: logger}
}

// ReceivableAging reports outstanding customer debt bucketed by age
func (s *AgingService) ReceivableAging(entries []ledger.Entry, customers []ledger.Counterparty, now time.Time) (*AgingReport, error) {
	return s.compute(entries, customers, ledger.AgingDirectionReceivable, now)
}

// PayableAging reports outstanding supplier debt bucketed by age
func (s *AgingService) PayableAging(entries []ledger.Entry, suppliers []ledger.Counterparty, now time.Time) (*AgingReport, error) {
	return s.compute(entries, suppliers, ledger.AgingDirectionPayable, now)
}

func (s *AgingService) compute(entries []ledger.Entry, counterparties []ledger.Counterparty, direction ledger.AgingDirection, now time.Time) (*AgingReport, error) {
	rows, err := ledger.ComputeAging(entries, counterparties, direction, now)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("aging report computed",
		zap.String("direction", direction.String()),
		zap.Int("rows", len(rows)),
	)

	return &AgingReport{
		Direction: direction,
		AsOf:      now,
		Rows:      rows,
		Totals:    SumRows(rows),
	}, nil
}

// SumRows computes the totals row by summing each bucket across all rows
func SumRows(rows []ledger.AgingRow) AgingTotals {
	totals := AgingTotals{
		TotalDue:     decimal.Zero,
		Bucket0To30:  decimal.Zero,
		Bucket31To60: decimal.Zero,
		Bucket61To90: decimal.Zero,
		Bucket90Plus: decimal.Zero,
	}
	for _, row := range rows {
		totals.TotalDue = totals.TotalDue.Add(row.TotalDue)
		totals.Bucket0To30 = totals.Bucket0To30.Add(row.Bucket0To30)
		totals.Bucket31To60 = totals.Bucket31To60.Add(row.Bucket31To60)
		totals.Bucket61To90 = totals.Bucket61To90.Add(row.Bucket61To90)
		totals.Bucket90Plus = totals.Bucket90Plus.Add(row.Bucket90Plus)
	}
	return totals
}
