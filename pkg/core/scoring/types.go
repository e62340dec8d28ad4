// Package scoring turns averaged financial ratios into a health score,
// a rating band and analyst commentary.
//
// Two rule sets exist. Display is the deduction ladder shown alongside the
// ratio charts; Report is the additive scheme printed in the exported
// document. They disagree on the same data and are kept as separate
// variants on purpose.
package scoring

import "financial_health/pkg/models"

// Rating is a health band label.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingRisky     Rating = "Risky"
	RatingCritical  Rating = "Critical"
	RatingAverage   Rating = "Average"
	RatingPoor      Rating = "Poor"
)

// ScoreResult is the outcome of a scoring rule.
type ScoreResult struct {
	Score      int    `json:"score"`
	Rating     Rating `json:"rating"`
	Commentary string `json:"commentary"`
}

// ReportScore extends ScoreResult with the document recommendation.
type ReportScore struct {
	ScoreResult
	Recommendation models.Signal `json:"recommendation"`
}
