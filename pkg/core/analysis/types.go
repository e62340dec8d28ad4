package analysis

import (
	"time"

	"financial_health/pkg/core/calc"
	"financial_health/pkg/core/scoring"
	"financial_health/pkg/core/valuation"
	"financial_health/pkg/models"
)

// Request is one analysis run: a primary company, an optional peer and the
// valuation inputs for the primary.
type Request struct {
	Primary *models.CompanySeries
	Peer    *models.CompanySeries // optional
	Inputs  valuation.Inputs
}

// Result is the complete analysis profile for a request.
type Result struct {
	Company    string    `json:"company"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	// 1. Per-year ratios and their means
	Ratios *calc.RatioSeries `json:"ratios"`
	Trend  []calc.TrendPoint `json:"trend"`

	// 2. Both score variants over the same averages
	Display scoring.ScoreResult `json:"display_score"`
	Report  scoring.ReportScore `json:"report_score"`

	// 3. Multiple, DCF and blended valuation
	Valuation *valuation.Result `json:"valuation"`

	// 4. Side-by-side means when a peer was supplied
	PeerRatios *calc.RatioSeries `json:"peer_ratios,omitempty"`
	Peer       *PeerComparison   `json:"peer_comparison,omitempty"`
}

// HasPeer reports whether a peer comparison was computed.
func (r *Result) HasPeer() bool {
	return r != nil && r.Peer != nil
}

// PeerMetric is one row of the comparison table.
type PeerMetric struct {
	Metric   string  `json:"metric"`
	CompanyA float64 `json:"company_a"`
	CompanyB float64 `json:"company_b"`
}

// PeerComparison lays the averaged ratios of two companies side by side.
type PeerComparison struct {
	CompanyA string       `json:"company_a_name"`
	CompanyB string       `json:"company_b_name"`
	Rows     []PeerMetric `json:"rows"`
}
