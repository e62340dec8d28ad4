package valuation

import (
	"fmt"
	"math"

	"financial_health/pkg/models"
)

// DCFInput encapsulates the inputs of the constant-growth DCF.
type DCFInput struct {
	BaseFCF            float64 // latest net profit, used as the FCF proxy
	GrowthRate         float64
	DiscountRate       float64
	TerminalGrowthRate float64
	Shares             models.SharesOutstanding
}

// DCFResult holds the valuation outputs.
type DCFResult struct {
	BaseFCF           float64       `json:"base_fcf"`
	ProjectedFCF      []float64     `json:"projected_fcf"`
	DiscountedFCF     []float64     `json:"discounted_fcf"`
	TerminalValue     float64       `json:"terminal_value"`
	PVTerminal        float64       `json:"pv_terminal"`
	EnterpriseValue   float64       `json:"enterprise_value"`
	FairValuePerShare float64       `json:"fair_value_per_share"`
	UpsidePct         float64       `json:"upside_pct"`
	Signal            models.Signal `json:"signal"`
}

// CalculateDCF projects base FCF at the growth rate for ProjectionYears,
// discounts each year, adds a Gordon-growth terminal value and divides by
// shares.
func CalculateDCF(in DCFInput) (DCFResult, error) {
	if !(in.Shares > 0) {
		return DCFResult{}, fmt.Errorf("%w: shares outstanding must be positive", models.ErrInvalidInput)
	}
	if err := checkRates(in.DiscountRate, in.TerminalGrowthRate); err != nil {
		return DCFResult{}, err
	}
	years := ProjectionYears
	res := DCFResult{
		BaseFCF:       in.BaseFCF,
		ProjectedFCF:  make([]float64, years),
		DiscountedFCF: make([]float64, years),
	}

	var pvSum float64
	for i := 1; i <= years; i++ {
		fcf := in.BaseFCF * math.Pow(1+in.GrowthRate, float64(i))
		pv := fcf / math.Pow(1+in.DiscountRate, float64(i))
		res.ProjectedFCF[i-1] = fcf
		res.DiscountedFCF[i-1] = pv
		pvSum += pv
	}

	lastFCF := res.ProjectedFCF[years-1]
	res.TerminalValue = lastFCF * (1 + in.TerminalGrowthRate) / (in.DiscountRate - in.TerminalGrowthRate)
	res.PVTerminal = res.TerminalValue / math.Pow(1+in.DiscountRate, float64(years))
	res.EnterpriseValue = pvSum + res.PVTerminal
	res.FairValuePerShare = res.EnterpriseValue / in.Shares.Float()

	return res, nil
}

// DCFSignal maps an upside percentage to the DCF call.
func DCFSignal(upsidePct float64) models.Signal {
	return ladder(upsidePct)
}

func ladder(pct float64) models.Signal {
	switch {
	case pct > 20:
		return models.SignalStrongBuy
	case pct > 10:
		return models.SignalBuy
	case pct > -10:
		return models.SignalHold
	}
	return models.SignalSell
}

// Upside is the percentage gap between a fair value and the market price.
func Upside(fairValue, marketPrice float64) (float64, error) {
	if marketPrice == 0 {
		return 0, fmt.Errorf("%w: market price is zero", models.ErrDivisionByZero)
	}
	if marketPrice < 0 {
		return 0, fmt.Errorf("%w: market price must be positive, got %v", models.ErrInvalidInput, marketPrice)
	}
	return (fairValue - marketPrice) / marketPrice * 100, nil
}
