package scoring

import (
	"financial_health/pkg/core/calc"
	"financial_health/pkg/models"
)

// Report scores the averages additively from zero (45..100) and attaches the
// document recommendation.
func Report(avg calc.Averages) ReportScore {
	score := 0

	if avg.CurrentRatio >= 1.5 {
		score += 30
	} else {
		score += 15
	}

	if avg.DebtRatio <= 0.5 {
		score += 30
	} else {
		score += 15
	}

	if avg.ProfitMargin >= 0.10 {
		score += 40
	} else {
		score += 20
	}

	rating, recommendation, comment := reportBand(score)
	return ReportScore{
		ScoreResult: ScoreResult{
			Score:      score,
			Rating:     rating,
			Commentary: comment,
		},
		Recommendation: recommendation,
	}
}

func reportBand(score int) (Rating, models.Signal, string) {
	switch {
	case score >= 80:
		return RatingExcellent, models.SignalStrongBuy, "The company demonstrates strong financial stability and low risk."
	case score >= 60:
		return RatingGood, models.SignalBuy, "The company shows satisfactory financial performance."
	case score >= 40:
		return RatingAverage, models.SignalHold, "The company needs improvement in key financial areas."
	}
	return RatingPoor, models.SignalAvoid, "The company faces high financial risk."
}
