package analysis

import (
	"fmt"
	"time"

	"financial_health/pkg/core/calc"
	"financial_health/pkg/core/scoring"
	"financial_health/pkg/core/valuation"
	"financial_health/pkg/models"
)

// Engine orchestrates ratio derivation, scoring, valuation and peer
// comparison for one request. It holds no state between runs.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a new instance of the engine.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Run performs the full analysis. Scores are computed from the averages
// before any commentary or recommendation is read, and a failure in any
// step yields no result.
func (e *Engine) Run(req Request) (*Result, error) {
	if req.Primary == nil {
		return nil, fmt.Errorf("%w: primary company series is required", models.ErrMissingField)
	}

	// 1. Ratios
	ratios, err := calc.DeriveRatios(req.Primary)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Primary.Name, err)
	}

	res := &Result{
		Company:    req.Primary.Name,
		AnalyzedAt: e.now(),
		Ratios:     ratios,
		Trend:      ratios.Trend(),
	}

	// 2. Scores
	res.Display = scoring.Display(ratios.Averages)
	res.Report = scoring.Report(ratios.Averages)

	// 3. Valuation
	val, err := valuation.Evaluate(req.Primary, req.Inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Primary.Name, err)
	}
	res.Valuation = val

	// 4. Peer
	if req.Peer != nil {
		peerRatios, err := calc.DeriveRatios(req.Peer)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", req.Peer.Name, err)
		}
		cmp := ComparePeers(ratios, peerRatios)
		res.PeerRatios = peerRatios
		res.Peer = &cmp
	}

	return res, nil
}
