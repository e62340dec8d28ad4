package valuation

import (
	"fmt"
	"math"

	"financial_health/pkg/models"
)

// ProjectionYears is the explicit DCF horizon.
const ProjectionYears = 5

// Inputs are the user-supplied valuation scalars, already normalized:
// rates are fractions and Shares is an absolute count.
type Inputs struct {
	MarketPE           float64                  `json:"market_pe"`
	Shares             models.SharesOutstanding `json:"shares_outstanding"`
	GrowthRate         float64                  `json:"growth_rate"`
	DiscountRate       float64                  `json:"discount_rate"`
	TerminalGrowthRate float64                  `json:"terminal_growth_rate"`
	// MarketPrice is optional; nil means "use the DCF fair value".
	MarketPrice *float64 `json:"market_price,omitempty"`
}

// Validate checks the cross-field invariants of the inputs.
func (in Inputs) Validate() error {
	for name, v := range map[string]float64{
		"market_pe":            in.MarketPE,
		"growth_rate":          in.GrowthRate,
		"discount_rate":        in.DiscountRate,
		"terminal_growth_rate": in.TerminalGrowthRate,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", models.ErrInvalidInput, name)
		}
	}
	if in.MarketPE <= 0 {
		return fmt.Errorf("%w: market P/E multiple must be positive, got %v", models.ErrInvalidInput, in.MarketPE)
	}
	if !(in.Shares > 0) {
		return fmt.Errorf("%w: shares outstanding must be positive", models.ErrInvalidInput)
	}
	if err := checkRates(in.DiscountRate, in.TerminalGrowthRate); err != nil {
		return err
	}
	if in.MarketPrice != nil && !(*in.MarketPrice > 0) {
		return fmt.Errorf("%w: market price must be positive, got %v", models.ErrInvalidInput, *in.MarketPrice)
	}
	return nil
}

// checkRates enforces discount > terminal growth. Equal rates would divide
// by zero in the terminal value, so that error matches both kinds.
func checkRates(discount, terminal float64) error {
	switch {
	case discount == terminal:
		return fmt.Errorf("%w: %w: discount rate %.4f equals terminal growth rate", models.ErrInvalidInput, models.ErrDivisionByZero, discount)
	case discount < terminal:
		return fmt.Errorf("%w: discount rate %.4f must exceed terminal growth rate %.4f", models.ErrInvalidInput, discount, terminal)
	}
	return nil
}
