// Package calc derives liquidity, leverage and profitability ratios from a
// company's yearly financial records.
package calc

import (
	"fmt"

	"financial_health/pkg/models"

	"gonum.org/v1/gonum/stat"
)

// YearRatios holds the derived ratios for one fiscal year.
type YearRatios struct {
	Record       models.FinancialRecord `json:"record"`
	CurrentRatio float64                `json:"current_ratio"`
	DebtRatio    float64                `json:"debt_ratio"`
	ProfitMargin float64                `json:"profit_margin"`
}

// Averages are the arithmetic means of each ratio across all years.
type Averages struct {
	CurrentRatio float64 `json:"current_ratio"`
	DebtRatio    float64 `json:"debt_ratio"`
	ProfitMargin float64 `json:"profit_margin"`
}

// RatioSeries is a company series augmented with per-year ratios.
type RatioSeries struct {
	Company  string       `json:"company"`
	Years    []YearRatios `json:"years"`
	Averages Averages     `json:"averages"`
}

// TrendPoint is one year of ratio trend data for charting.
type TrendPoint struct {
	Year         int     `json:"year"`
	CurrentRatio float64 `json:"current_ratio"`
	DebtRatio    float64 `json:"debt_ratio"`
	ProfitMargin float64 `json:"profit_margin"`
}

// DeriveRatios computes current ratio, debt ratio and profit margin for
// every record plus their means. A zero divisor in any year fails the whole
// derivation with models.ErrDivisionByZero.
func DeriveRatios(series *models.CompanySeries) (*RatioSeries, error) {
	if series == nil || len(series.Records) == 0 {
		return nil, fmt.Errorf("%w: empty company series", models.ErrInvalidInput)
	}

	out := &RatioSeries{
		Company: series.Name,
		Years:   make([]YearRatios, 0, len(series.Records)),
	}

	current := make([]float64, 0, len(series.Records))
	debt := make([]float64, 0, len(series.Records))
	margin := make([]float64, 0, len(series.Records))

	for _, r := range series.Records {
		cr, err := CurrentRatio(r.CurrentAssets, r.CurrentLiabilities)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", r.Year, err)
		}
		dr, err := DebtRatio(r.TotalLiabilities, r.TotalAssets)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", r.Year, err)
		}
		pm, err := ProfitMargin(r.NetProfit, r.Revenue)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", r.Year, err)
		}

		out.Years = append(out.Years, YearRatios{Record: r, CurrentRatio: cr, DebtRatio: dr, ProfitMargin: pm})
		current = append(current, cr)
		debt = append(debt, dr)
		margin = append(margin, pm)
	}

	out.Averages = Averages{
		CurrentRatio: stat.Mean(current, nil),
		DebtRatio:    stat.Mean(debt, nil),
		ProfitMargin: stat.Mean(margin, nil),
	}
	return out, nil
}

// Trend returns the per-year ratios in year order.
func (s *RatioSeries) Trend() []TrendPoint {
	points := make([]TrendPoint, len(s.Years))
	for i, y := range s.Years {
		points[i] = TrendPoint{
			Year:         y.Record.Year,
			CurrentRatio: y.CurrentRatio,
			DebtRatio:    y.DebtRatio,
			ProfitMargin: y.ProfitMargin,
		}
	}
	return points
}

// CurrentRatio = current assets / current liabilities.
func CurrentRatio(currentAssets, currentLiabilities float64) (float64, error) {
	return strictDiv(currentAssets, currentLiabilities, "current_liabilities")
}

// DebtRatio = total liabilities / total assets.
func DebtRatio(totalLiabilities, totalAssets float64) (float64, error) {
	return strictDiv(totalLiabilities, totalAssets, "total_assets")
}

// ProfitMargin = net profit / revenue.
func ProfitMargin(netProfit, revenue float64) (float64, error) {
	return strictDiv(netProfit, revenue, "revenue")
}

// Mean is the arithmetic mean; zero for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func strictDiv(numerator, denominator float64, field string) (float64, error) {
	if denominator == 0 {
		return 0, fmt.Errorf("%w: %s is zero", models.ErrDivisionByZero, field)
	}
	return numerator / denominator, nil
}
