package valuation

import (
	"fmt"

	"financial_health/pkg/core/calc"
	"financial_health/pkg/models"
)

// EPS source labels.
const (
	EPSFromRecordShares = "record_shares"
	EPSFromInputShares  = "input_shares"
)

// PEInput holds the inputs of the multiple-based valuation.
type PEInput struct {
	Series   *models.CompanySeries
	Shares   models.SharesOutstanding // fallback when records carry no Shares
	MarketPE float64
}

// PEResult is the multiple-based fair value. FairValue always uses the
// input share count and is the value that enters the blend. SignalEPS and
// SignalFairValue drive the Buy/Hold/Sell call; they use per-record
// share counts when every record carries one.
type PEResult struct {
	MeanNetProfit   float64       `json:"mean_net_profit"`
	EPS             float64       `json:"eps"`
	FairValue       float64       `json:"fair_value"`
	EPSSource       string        `json:"eps_source"`
	SignalEPS       float64       `json:"signal_eps"`
	SignalFairValue float64       `json:"signal_fair_value"`
	UpsidePct       float64       `json:"upside_pct"`
	Signal          models.Signal `json:"signal"`
	Reason          string        `json:"reason"`
}

// MultipleFairValue computes eps = meanNetProfit / shares and
// fair value = eps * pe.
func MultipleFairValue(meanNetProfit float64, shares models.SharesOutstanding, pe float64) (eps, fair float64, err error) {
	if !(shares > 0) {
		return 0, 0, fmt.Errorf("%w: shares outstanding must be positive", models.ErrInvalidInput)
	}
	if !(pe > 0) {
		return 0, 0, fmt.Errorf("%w: P/E multiple must be positive, got %v", models.ErrInvalidInput, pe)
	}
	eps = meanNetProfit / shares.Float()
	return eps, eps * pe, nil
}

// CalculatePE values the company at the industry multiple from mean net
// profit and the input share count. When every record carries its own
// share count, the recommendation EPS is the mean of the per-year EPS.
func CalculatePE(in PEInput) (PEResult, error) {
	if in.Series == nil || len(in.Series.Records) == 0 {
		return PEResult{}, fmt.Errorf("%w: empty company series", models.ErrInvalidInput)
	}

	meanProfit := calc.Mean(in.Series.NetProfits())
	eps, fair, err := MultipleFairValue(meanProfit, in.Shares, in.MarketPE)
	if err != nil {
		return PEResult{}, err
	}
	res := PEResult{
		MeanNetProfit:   meanProfit,
		EPS:             eps,
		FairValue:       fair,
		EPSSource:       EPSFromInputShares,
		SignalEPS:       eps,
		SignalFairValue: fair,
	}
	if !in.Series.AllHaveShares() {
		return res, nil
	}

	perYear := make([]float64, len(in.Series.Records))
	for i, r := range in.Series.Records {
		if !(r.Shares.Value > 0) {
			return PEResult{}, fmt.Errorf("%w: shares for year %d must be positive", models.ErrInvalidInput, r.Year)
		}
		perYear[i] = r.NetProfit / r.Shares.Value.Float()
	}
	res.SignalEPS = calc.Mean(perYear)
	res.SignalFairValue = res.SignalEPS * in.MarketPE
	res.EPSSource = EPSFromRecordShares
	return res, nil
}

// PESignal is the three-way call used for the multiple-based estimate.
func PESignal(upsidePct float64) (models.Signal, string) {
	switch {
	case upsidePct > 20:
		return models.SignalBuy, "Stock appears undervalued with strong upside potential."
	case upsidePct > -10:
		return models.SignalHold, "Stock is fairly valued. Limited upside at current levels."
	}
	return models.SignalSell, "Stock appears overvalued with downside risk."
}
