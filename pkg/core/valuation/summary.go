package valuation

import (
	"fmt"

	"financial_health/pkg/models"
)

// Result aggregates both estimates and the blended target.
type Result struct {
	PE                   PEResult    `json:"pe"`
	DCF                  DCFResult   `json:"dcf"`
	Blend                BlendResult `json:"blend"`
	MarketPrice          float64     `json:"market_price"`
	MarketPriceDefaulted bool        `json:"market_price_defaulted"`
}

// Evaluate runs the multiple-based and DCF valuations, resolves the market
// price and derives every upside and signal from it. Without an explicit
// price the DCF and blend compare against the DCF fair value and the P/E
// call compares against its own fair value.
func Evaluate(series *models.CompanySeries, in Inputs) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if series == nil || len(series.Records) == 0 {
		return nil, fmt.Errorf("%w: empty company series", models.ErrInvalidInput)
	}

	pe, err := CalculatePE(PEInput{Series: series, Shares: in.Shares, MarketPE: in.MarketPE})
	if err != nil {
		return nil, fmt.Errorf("pe valuation: %w", err)
	}

	dcf, err := CalculateDCF(DCFInput{
		BaseFCF:            series.Latest().NetProfit,
		GrowthRate:         in.GrowthRate,
		DiscountRate:       in.DiscountRate,
		TerminalGrowthRate: in.TerminalGrowthRate,
		Shares:             in.Shares,
	})
	if err != nil {
		return nil, fmt.Errorf("dcf valuation: %w", err)
	}

	res := &Result{MarketPrice: dcf.FairValuePerShare, MarketPriceDefaulted: true}
	if in.MarketPrice != nil {
		res.MarketPrice = *in.MarketPrice
		res.MarketPriceDefaulted = false
	}
	if !(res.MarketPrice > 0) {
		return nil, fmt.Errorf("%w: market price must be positive, got %.2f (supply one explicitly when the DCF value is not positive)", models.ErrInvalidInput, res.MarketPrice)
	}

	pePrice := res.MarketPrice
	if res.MarketPriceDefaulted {
		pePrice = pe.SignalFairValue
	}
	if pe.UpsidePct, err = upsideOrFlat(pe.SignalFairValue, pePrice); err != nil {
		return nil, err
	}
	pe.Signal, pe.Reason = PESignal(pe.UpsidePct)

	if dcf.UpsidePct, err = Upside(dcf.FairValuePerShare, res.MarketPrice); err != nil {
		return nil, err
	}
	dcf.Signal = DCFSignal(dcf.UpsidePct)

	blend, err := Blend(pe.FairValue, dcf.FairValuePerShare, res.MarketPrice)
	if err != nil {
		return nil, err
	}

	res.PE = pe
	res.DCF = dcf
	res.Blend = blend
	return res, nil
}

// upsideOrFlat is Upside, except that a non-positive price yields 0.
func upsideOrFlat(fairValue, price float64) (float64, error) {
	if !(price > 0) {
		return 0, nil
	}
	return Upside(fairValue, price)
}
