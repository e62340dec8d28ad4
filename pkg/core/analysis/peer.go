package analysis

import "financial_health/pkg/core/calc"

// Metric labels shared by the comparison table and the report exports.
const (
	MetricCurrentRatio = "Current Ratio"
	MetricDebtRatio    = "Debt Ratio"
	MetricProfitMargin = "Profit Margin"
)

// ComparePeers puts the mean ratios of two companies side by side.
// Nothing is scored or ranked.
func ComparePeers(a, b *calc.RatioSeries) PeerComparison {
	return PeerComparison{
		CompanyA: a.Company,
		CompanyB: b.Company,
		Rows: []PeerMetric{
			{Metric: MetricCurrentRatio, CompanyA: a.Averages.CurrentRatio, CompanyB: b.Averages.CurrentRatio},
			{Metric: MetricDebtRatio, CompanyA: a.Averages.DebtRatio, CompanyB: b.Averages.DebtRatio},
			{Metric: MetricProfitMargin, CompanyA: a.Averages.ProfitMargin, CompanyB: b.Averages.ProfitMargin},
		},
	}
}
