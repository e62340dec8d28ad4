package valuation

import "financial_health/pkg/models"

// Fixed weights of the blended target price.
const (
	PEWeight  = 0.4
	DCFWeight = 0.6
)

// BlendResult is the analyst target price.
type BlendResult struct {
	TargetPrice       float64       `json:"target_price"`
	ExpectedReturnPct float64       `json:"expected_return_pct"`
	Signal            models.Signal `json:"signal"`
}

// TargetPrice = 0.4 * P/E fair value + 0.6 * DCF fair value.
func TargetPrice(peFair, dcfFair float64) float64 {
	return PEWeight*peFair + DCFWeight*dcfFair
}

// Blend computes the target price and its expected return against the
// market price.
func Blend(peFair, dcfFair, marketPrice float64) (BlendResult, error) {
	target := TargetPrice(peFair, dcfFair)
	ret, err := Upside(target, marketPrice)
	if err != nil {
		return BlendResult{}, err
	}
	return BlendResult{TargetPrice: target, ExpectedReturnPct: ret, Signal: BlendSignal(ret)}, nil
}

// BlendSignal maps an expected return to the final analyst call.
func BlendSignal(expectedReturnPct float64) models.Signal {
	return ladder(expectedReturnPct)
}
