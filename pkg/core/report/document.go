package report

import (
	"fmt"
	"strings"
	"time"

	"financial_health/pkg/core/analysis"
	"financial_health/pkg/core/utils"
	"financial_health/pkg/core/valuation"

	"github.com/google/uuid"
)

const (
	DocumentTitle = "Financial Health Analysis Report"
	Conclusion    = "This report summarizes the company’s financial health, risk profile, and comparative position."
)

// Table is a simple grid with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Section is one heading with its paragraphs and an optional table.
type Section struct {
	Heading    string
	Paragraphs []string
	Table      *Table
}

// Document is the format-neutral report. Markdown, HTML and PDF are all
// rendered from the same sections.
type Document struct {
	ID          uuid.UUID
	Title       string
	Company     string
	GeneratedAt time.Time
	Sections    []Section
}

// BuildDocument assembles the report from a finished analysis. narrative
// is optional; an empty string omits that section.
func BuildDocument(res *analysis.Result, narrative string) *Document {
	doc := &Document{
		ID:          uuid.New(),
		Title:       DocumentTitle,
		Company:     res.Company,
		GeneratedAt: res.AnalyzedAt,
	}

	score := res.Report
	doc.Sections = append(doc.Sections, Section{
		Heading: "Executive Summary",
		Paragraphs: []string{
			fmt.Sprintf("Company: %s", res.Company),
			fmt.Sprintf("Health Score: %d/100", score.Score),
			fmt.Sprintf("Rating: %s", score.Rating),
			fmt.Sprintf("Recommendation: %s", score.Recommendation),
		},
	})

	avg := res.Ratios.Averages
	doc.Sections = append(doc.Sections, Section{
		Heading: "Key Financial Ratios",
		Table: &Table{
			Header: []string{"Metric", "Value"},
			Rows: [][]string{
				{analysis.MetricCurrentRatio, fixed2(avg.CurrentRatio)},
				{analysis.MetricDebtRatio, fixed2(avg.DebtRatio)},
				{analysis.MetricProfitMargin, fixed2(avg.ProfitMargin)},
			},
		},
	})

	doc.Sections = append(doc.Sections, Section{
		Heading:    "Analyst Commentary",
		Paragraphs: []string{score.Commentary},
	})

	if res.HasPeer() {
		t := &Table{Header: []string{"Metric", "Company A", "Company B"}}
		for _, row := range res.Peer.Rows {
			t.Rows = append(t.Rows, []string{row.Metric, fixed2(row.CompanyA), fixed2(row.CompanyB)})
		}
		doc.Sections = append(doc.Sections, Section{
			Heading:    "Peer Comparison",
			Paragraphs: []string{fmt.Sprintf("Company A: %s. Company B: %s.", res.Peer.CompanyA, res.Peer.CompanyB)},
			Table:      t,
		})
	}

	if v := res.Valuation; v != nil {
		price := fmt.Sprintf("Market price: %s", money(v.MarketPrice))
		if v.MarketPriceDefaulted {
			price += " (not supplied, DCF fair value used)"
		}
		paragraphs := []string{
			fmt.Sprintf("Base Free Cash Flow (Latest Profit): %s", money(v.DCF.BaseFCF)),
			price,
		}
		if v.PE.EPSSource == valuation.EPSFromRecordShares {
			paragraphs = append(paragraphs, fmt.Sprintf("P/E call uses per-year share counts: EPS %s, fair value %s.", fixed2(v.PE.SignalEPS), money(v.PE.SignalFairValue)))
		}
		doc.Sections = append(doc.Sections, Section{
			Heading:    "Valuation Summary",
			Paragraphs: paragraphs,
			Table: &Table{
				Header: []string{"Method", "Fair Value", "Upside %", "Signal"},
				Rows: [][]string{
					{"P/E Multiple", money(v.PE.FairValue), fixed2(v.PE.UpsidePct), string(v.PE.Signal)},
					{"Discounted Cash Flow", money(v.DCF.FairValuePerShare), fixed2(v.DCF.UpsidePct), string(v.DCF.Signal)},
					{"Blended Target (40/60)", money(v.Blend.TargetPrice), fixed2(v.Blend.ExpectedReturnPct), string(v.Blend.Signal)},
				},
			},
		})
	}

	if narrative = strings.TrimSpace(narrative); narrative != "" {
		doc.Sections = append(doc.Sections, Section{
			Heading:    "AI Narrative",
			Paragraphs: splitParagraphs(narrative),
		})
	}

	doc.Sections = append(doc.Sections, Section{
		Heading:    "Conclusion",
		Paragraphs: []string{Conclusion},
	})
	return doc
}

// Section returns the section with the given heading, or nil.
func (d *Document) Section(heading string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Heading == heading {
			return &d.Sections[i]
		}
	}
	return nil
}

// Markdown renders the document as GitHub-flavoured Markdown.
func (d *Document) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	if !d.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s · Report ID %s_\n\n", d.GeneratedAt.Format("2006-01-02 15:04 MST"), d.ID)
	}

	for _, s := range d.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Heading)
		for _, p := range s.Paragraphs {
			b.WriteString(p)
			b.WriteString("\n\n")
		}
		if s.Table != nil {
			writeMarkdownTable(&b, s.Table)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// HTML renders the Markdown through goldmark into a standalone page.
func (d *Document) HTML() ([]byte, error) {
	body, err := utils.RenderHTML(d.Markdown())
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", d.Title)
	b.WriteString(htmlStyle)
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String()), nil
}

// Render produces the document bytes for the requested format.
func (d *Document) Render(f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return []byte(d.Markdown()), nil
	case FormatHTML:
		return d.HTML()
	case FormatPDF:
		return d.PDF()
	}
	return nil, fmt.Errorf("unsupported document format %q", f)
}

const htmlStyle = `<style>
body { font-family: Helvetica, Arial, sans-serif; max-width: 820px; margin: 2em auto; color: #222; }
table { border-collapse: collapse; margin: 1em 0; }
th { background: #d3d3d3; }
th, td { border: 1px solid #000; padding: 4px 16px; text-align: center; }
</style>
`

func writeMarkdownTable(b *strings.Builder, t *Table) {
	row := func(cells []string) {
		b.WriteString("|")
		for _, c := range cells {
			b.WriteString(" ")
			b.WriteString(strings.ReplaceAll(c, "|", `\|`))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	row(t.Header)
	sep := make([]string, len(t.Header))
	for i := range sep {
		sep[i] = ":---:"
	}
	row(sep)
	for _, r := range t.Rows {
		row(r)
	}
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
