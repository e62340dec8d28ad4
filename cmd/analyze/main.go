// Command analyze runs the financial health analysis on local files and
// writes the spreadsheet and document reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"financial_health/pkg/core/analysis"
	"financial_health/pkg/core/config"
	"financial_health/pkg/core/ingest"
	"financial_health/pkg/core/llm"
	"financial_health/pkg/core/report"
	"financial_health/pkg/logger"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	params := cfg.Defaults

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fileA := fs.String("a", "", "Company A financials (.xlsx, .csv, .json, .html)")
	fileB := fs.String("b", "", "Optional peer company financials")
	fs.IntVar(&params.MarketPE, "pe", params.MarketPE, "Industry P/E multiple")
	fs.IntVar(&params.SharesLakhs, "shares-lakhs", params.SharesLakhs, "Shares outstanding in lakhs")
	fs.Float64Var(&params.GrowthPct, "growth", params.GrowthPct, "FCF growth rate (%)")
	fs.Float64Var(&params.DiscountPct, "discount", params.DiscountPct, "Discount rate / WACC (%)")
	fs.Float64Var(&params.TerminalPct, "terminal", params.TerminalPct, "Terminal growth rate (%)")
	price := fs.Float64("price", 0, "Current market price; 0 uses the DCF fair value")
	outDir := fs.String("out", ".", "Output directory")
	format := fs.String("format", "pdf", "Document format: pdf, html or md")
	narrate := fs.Bool("narrate", false, "Add an AI narrative (needs narrative provider config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fileA == "" {
		fs.Usage()
		return fmt.Errorf("-a is required")
	}
	if *price != 0 {
		params.MarketPrice = price
	}

	docFormat, err := report.ParseFormat(*format)
	if err != nil {
		return err
	}

	l := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: true, Output: stderr})
	l = logger.Component(l, "analyze")

	req := analysis.Request{}
	if req.Primary, err = ingest.ReadFile(*fileA); err != nil {
		return err
	}
	if *fileB != "" {
		if req.Peer, err = ingest.ReadFile(*fileB); err != nil {
			return err
		}
	}
	if req.Inputs, err = params.Inputs(cfg.Bounds); err != nil {
		return err
	}

	res, err := analysis.NewEngine().Run(req)
	if err != nil {
		return err
	}
	logSummary(l, res)

	narrative := ""
	if *narrate {
		narrative = buildNarrative(l, cfg, res)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	xlsx, err := report.Spreadsheet(res)
	if err != nil {
		return err
	}
	xlsxPath := filepath.Join(*outDir, report.SpreadsheetFilename)
	if err := os.WriteFile(xlsxPath, xlsx, 0o644); err != nil {
		return err
	}

	doc := report.BuildDocument(res, narrative)
	content, err := doc.Render(docFormat)
	if err != nil {
		return err
	}
	docPath := filepath.Join(*outDir, docFormat.Filename())
	if err := os.WriteFile(docPath, content, 0o644); err != nil {
		return err
	}

	l.Info().Str("spreadsheet", xlsxPath).Str("document", docPath).Str("report_id", doc.ID.String()).Msg("Reports written")
	return nil
}

func logSummary(l zerolog.Logger, res *analysis.Result) {
	avg := res.Ratios.Averages
	l.Info().
		Str("company", res.Company).
		Float64("current_ratio", avg.CurrentRatio).
		Float64("debt_ratio", avg.DebtRatio).
		Float64("profit_margin", avg.ProfitMargin).
		Msg("Ratios")
	l.Info().
		Int("score", res.Display.Score).
		Str("rating", string(res.Display.Rating)).
		Msg(res.Display.Commentary)
	l.Info().
		Int("score", res.Report.Score).
		Str("rating", string(res.Report.Rating)).
		Str("recommendation", string(res.Report.Recommendation)).
		Msg("Report score")

	v := res.Valuation
	l.Info().
		Float64("base_fcf", v.DCF.BaseFCF).
		Float64("pe_fair_value", v.PE.FairValue).
		Str("pe_signal", string(v.PE.Signal)).
		Float64("dcf_fair_value", v.DCF.FairValuePerShare).
		Str("dcf_signal", string(v.DCF.Signal)).
		Float64("target_price", v.Blend.TargetPrice).
		Float64("expected_return_pct", v.Blend.ExpectedReturnPct).
		Str("signal", string(v.Blend.Signal)).
		Bool("price_defaulted", v.MarketPriceDefaulted).
		Msg("Valuation")

	if res.HasPeer() {
		for _, row := range res.Peer.Rows {
			l.Info().
				Str("metric", row.Metric).
				Float64(res.Peer.CompanyA, row.CompanyA).
				Float64(res.Peer.CompanyB, row.CompanyB).
				Msg("Peer comparison")
		}
	}
}

func buildNarrative(l zerolog.Logger, cfg *config.Config, res *analysis.Result) string {
	provider, err := llm.NewProvider(cfg.Narrative.Provider, cfg.Narrative.Model, cfg.Narrative.APIKey)
	if err != nil || provider == nil {
		l.Warn().Err(err).Msg("Narrative requested but no provider is configured")
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	text, err := report.Narrate(ctx, provider, res)
	if err != nil {
		l.Warn().Err(err).Msg("Narrative skipped")
		return ""
	}
	return text
}
