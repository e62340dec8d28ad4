package valuation

import (
	"fmt"

	"financial_health/pkg/models"
)

// Range is an inclusive bound for a form parameter.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Bounds are the limits of the user-facing parameter controls.
type Bounds struct {
	MarketPE    Range `yaml:"market_pe" json:"market_pe"`
	SharesLakhs Range `yaml:"shares_lakhs" json:"shares_lakhs"`
	GrowthPct   Range `yaml:"growth_pct" json:"growth_pct"`
	DiscountPct Range `yaml:"discount_pct" json:"discount_pct"`
	TerminalPct Range `yaml:"terminal_pct" json:"terminal_pct"`
}

// DefaultBounds mirrors the slider limits of the analyzer form.
func DefaultBounds() Bounds {
	return Bounds{
		MarketPE:    Range{Min: 5, Max: 40},
		SharesLakhs: Range{Min: 1, Max: 1_000_000},
		GrowthPct:   Range{Min: 0, Max: 30},
		DiscountPct: Range{Min: 5, Max: 25},
		TerminalPct: Range{Min: 0, Max: 8},
	}
}

// Params are the raw form values: percentages and shares in lakhs.
type Params struct {
	MarketPE    int      `json:"pe" yaml:"pe"`
	SharesLakhs int      `json:"shares_lakhs" yaml:"shares_lakhs"`
	GrowthPct   float64  `json:"growth_pct" yaml:"growth_pct"`
	DiscountPct float64  `json:"discount_pct" yaml:"discount_pct"`
	TerminalPct float64  `json:"terminal_pct" yaml:"terminal_pct"`
	MarketPrice *float64 `json:"market_price,omitempty" yaml:"market_price,omitempty"`
}

// DefaultParams are the initial control values of the analyzer form.
func DefaultParams() Params {
	return Params{
		MarketPE:    15,
		SharesLakhs: 10,
		GrowthPct:   10,
		DiscountPct: 12,
		TerminalPct: 4,
	}
}

// Inputs validates the form values against b and converts them into
// normalized valuation inputs.
func (p Params) Inputs(b Bounds) (Inputs, error) {
	checks := []struct {
		name string
		v    float64
		r    Range
	}{
		{"pe", float64(p.MarketPE), b.MarketPE},
		{"shares_lakhs", float64(p.SharesLakhs), b.SharesLakhs},
		{"growth_pct", p.GrowthPct, b.GrowthPct},
		{"discount_pct", p.DiscountPct, b.DiscountPct},
		{"terminal_pct", p.TerminalPct, b.TerminalPct},
	}
	for _, c := range checks {
		if !c.r.Contains(c.v) {
			return Inputs{}, fmt.Errorf("%w: %s=%v outside [%v, %v]", models.ErrInvalidInput, c.name, c.v, c.r.Min, c.r.Max)
		}
	}

	shares, err := models.SharesFromLakhs(p.SharesLakhs)
	if err != nil {
		return Inputs{}, err
	}

	in := Inputs{
		MarketPE:           float64(p.MarketPE),
		Shares:             shares,
		GrowthRate:         p.GrowthPct / 100,
		DiscountRate:       p.DiscountPct / 100,
		TerminalGrowthRate: p.TerminalPct / 100,
		MarketPrice:        p.MarketPrice,
	}
	if err := in.Validate(); err != nil {
		return Inputs{}, err
	}
	return in, nil
}
