package report

import (
	"context"
	"fmt"
	"strings"

	"financial_health/pkg/core/analysis"
	"financial_health/pkg/core/llm"
	"financial_health/pkg/core/utils"
)

const narrativeSystemPrompt = `You are a financial analyst writing for a non-specialist reader.
Use only the figures you are given. Do not invent numbers, do not change
the score, rating or signals, and do not give personal investment advice.
Answer in two or three short paragraphs of plain Markdown without headings.`

// Narrate asks the provider for a plain-language summary of the computed
// figures. A nil provider returns an empty narrative.
func Narrate(ctx context.Context, p llm.Provider, res *analysis.Result) (string, error) {
	if p == nil || res == nil {
		return "", nil
	}

	out, err := p.GenerateResponse(ctx, NarrativePrompt(res), narrativeSystemPrompt, map[string]interface{}{
		"temperature": 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("narrative: %w", err)
	}
	return utils.CleanMarkdown(out), nil
}

// NarrativePrompt lists the finished figures the model may talk about.
func NarrativePrompt(res *analysis.Result) string {
	var b strings.Builder
	avg := res.Ratios.Averages

	fmt.Fprintf(&b, "Company: %s\n", res.Company)
	fmt.Fprintf(&b, "Years covered: %d\n", len(res.Trend))
	if n := len(res.Trend); n > 0 {
		fmt.Fprintf(&b, "Period: %d to %d\n", res.Trend[0].Year, res.Trend[n-1].Year)
	}
	fmt.Fprintf(&b, "Average current ratio: %s\n", fixed2(avg.CurrentRatio))
	fmt.Fprintf(&b, "Average debt ratio: %s\n", fixed2(avg.DebtRatio))
	fmt.Fprintf(&b, "Average profit margin: %s\n", fixed2(avg.ProfitMargin))
	fmt.Fprintf(&b, "Health score: %d/100 (%s), recommendation %s\n", res.Report.Score, res.Report.Rating, res.Report.Recommendation)

	if v := res.Valuation; v != nil {
		fmt.Fprintf(&b, "P/E fair value per share: %s (%s)\n", money(v.PE.FairValue), v.PE.Signal)
		fmt.Fprintf(&b, "DCF fair value per share: %s (%s)\n", money(v.DCF.FairValuePerShare), v.DCF.Signal)
		fmt.Fprintf(&b, "Blended target price: %s, expected return %s%% (%s)\n", money(v.Blend.TargetPrice), fixed2(v.Blend.ExpectedReturnPct), v.Blend.Signal)
	}

	if res.HasPeer() {
		fmt.Fprintf(&b, "Peer: %s\n", res.Peer.CompanyB)
		for _, row := range res.Peer.Rows {
			fmt.Fprintf(&b, "  %s: %s vs %s\n", row.Metric, fixed2(row.CompanyA), fixed2(row.CompanyB))
		}
	}

	b.WriteString("\nSummarize the company's financial health and valuation.")
	return b.String()
}
