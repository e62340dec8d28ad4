package scoring

import (
	"strings"

	"financial_health/pkg/core/calc"
)

// Display scores the averages by deducting from 100. Every ladder applies;
// the lowest attainable score is 25.
func Display(avg calc.Averages) ScoreResult {
	score := 100 - liquidityPenalty(avg.CurrentRatio) - leveragePenalty(avg.DebtRatio) - marginPenalty(avg.ProfitMargin)

	return ScoreResult{
		Score:      score,
		Rating:     displayRating(score),
		Commentary: displayCommentary(avg, score),
	}
}

func liquidityPenalty(currentRatio float64) int {
	switch {
	case currentRatio < 1.0:
		return 25
	case currentRatio < 1.5:
		return 15
	}
	return 0
}

func leveragePenalty(debtRatio float64) int {
	switch {
	case debtRatio > 0.7:
		return 25
	case debtRatio > 0.5:
		return 15
	}
	return 0
}

func marginPenalty(profitMargin float64) int {
	switch {
	case profitMargin < 0.05:
		return 25
	case profitMargin < 0.10:
		return 15
	}
	return 0
}

func displayRating(score int) Rating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingRisky
	}
	return RatingCritical
}

// displayCommentary uses its own thresholds, which intentionally differ from
// the penalty ladders above.
func displayCommentary(avg calc.Averages, score int) string {
	var b strings.Builder

	switch {
	case avg.CurrentRatio >= 1.5:
		b.WriteString("The company demonstrates strong liquidity position. ")
	case avg.CurrentRatio >= 1:
		b.WriteString("The company maintains adequate short-term liquidity. ")
	default:
		b.WriteString("The company shows weak liquidity which may impact operations. ")
	}

	switch {
	case avg.DebtRatio <= 0.4:
		b.WriteString("Leverage levels are conservative, indicating low financial risk. ")
	case avg.DebtRatio <= 0.6:
		b.WriteString("The company operates with moderate leverage. ")
	default:
		b.WriteString("High leverage levels indicate elevated financial risk. ")
	}

	switch {
	case avg.ProfitMargin >= 0.12:
		b.WriteString("Profitability is strong and supports sustainable growth. ")
	case avg.ProfitMargin >= 0.08:
		b.WriteString("Profitability remains stable with moderate margins. ")
	default:
		b.WriteString("Low profit margins may impact long-term sustainability. ")
	}

	switch {
	case score >= 80:
		b.WriteString("Overall, the company reflects strong financial stability.")
	case score >= 60:
		b.WriteString("Overall, the company shows satisfactory financial performance.")
	case score >= 40:
		b.WriteString("Overall, financial performance requires improvement.")
	default:
		b.WriteString("Overall, the company faces significant financial stress.")
	}

	return b.String()
}
