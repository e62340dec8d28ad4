// Package report turns an analysis result into downloadable artifacts:
// an xlsx workbook and a document rendered as Markdown, HTML or PDF.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Artifact file names offered for download.
const (
	SpreadsheetFilename = "financial_report.xlsx"
	DocumentBasename    = "financial_analysis_report"
)

// Format is a document output format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts pdf, html and md (markdown). Empty means pdf.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "html", "htm":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unsupported document format %q", s)
}

// Filename returns the download name for the format.
func (f Format) Filename() string {
	return DocumentBasename + "." + string(f)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/pdf"
	}
}

// SpreadsheetContentType is the MIME type of the workbook.
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// fixed2 formats v with exactly two decimals.
func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// money formats a per-share amount with thousands separators.
func money(v float64) string {
	return printer.Sprintf("%.2f", round2(v))
}
