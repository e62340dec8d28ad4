package models

import (
	"fmt"
	"math"
	"sort"
)

// LakhShares is the number of shares in one lakh.
const LakhShares = 100_000

// SharesOutstanding is an absolute share count. The zero value is invalid;
// construct it with NewSharesOutstanding or SharesFromLakhs.
type SharesOutstanding float64

// NewSharesOutstanding validates an absolute share count.
func NewSharesOutstanding(count float64) (SharesOutstanding, error) {
	if math.IsNaN(count) || math.IsInf(count, 0) || count <= 0 {
		return 0, fmt.Errorf("%w: shares outstanding must be positive, got %v", ErrInvalidInput, count)
	}
	return SharesOutstanding(count), nil
}

// SharesFromLakhs converts a share count entered in lakhs to absolute shares.
func SharesFromLakhs(lakhs int) (SharesOutstanding, error) {
	if lakhs <= 0 {
		return 0, fmt.Errorf("%w: shares (lakhs) must be positive, got %d", ErrInvalidInput, lakhs)
	}
	return SharesOutstanding(float64(lakhs) * LakhShares), nil
}

// Float returns the share count as float64.
func (s SharesOutstanding) Float() float64 { return float64(s) }

// OptionalShares carries the optional Shares column of a record.
type OptionalShares struct {
	Value SharesOutstanding `json:"value"`
	Valid bool              `json:"valid"`
}

// SomeShares wraps a present share count.
func SomeShares(s SharesOutstanding) OptionalShares {
	return OptionalShares{Value: s, Valid: true}
}

// FinancialRecord is one fiscal year for one company.
type FinancialRecord struct {
	Year               int            `json:"year"`
	CurrentAssets      float64        `json:"current_assets"`
	CurrentLiabilities float64        `json:"current_liabilities"`
	TotalLiabilities   float64        `json:"total_liabilities"`
	TotalAssets        float64        `json:"total_assets"`
	NetProfit          float64        `json:"net_profit"`
	Revenue            float64        `json:"revenue"`
	Shares             OptionalShares `json:"shares"`
}

// CompanySeries is the year-ordered record sequence for one company.
type CompanySeries struct {
	Name    string            `json:"name"`
	Records []FinancialRecord `json:"records"`
}

// NewCompanySeries sorts records by year and rejects empty input and
// duplicate years. The input slice is copied.
func NewCompanySeries(name string, records []FinancialRecord) (*CompanySeries, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: company %q has no yearly records", ErrInvalidInput, name)
	}

	sorted := make([]FinancialRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Year == sorted[i-1].Year {
			return nil, fmt.Errorf("%w: duplicate year %d for company %q", ErrInvalidInput, sorted[i].Year, name)
		}
	}

	return &CompanySeries{Name: name, Records: sorted}, nil
}

// Latest returns the most recent record.
func (s *CompanySeries) Latest() FinancialRecord {
	return s.Records[len(s.Records)-1]
}

// NetProfits returns the net profit column in year order.
func (s *CompanySeries) NetProfits() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.NetProfit
	}
	return out
}

// AllHaveShares reports whether every record carries a share count.
func (s *CompanySeries) AllHaveShares() bool {
	for _, r := range s.Records {
		if !r.Shares.Valid {
			return false
		}
	}
	return len(s.Records) > 0
}
