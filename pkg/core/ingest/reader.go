// Package ingest reads an uploaded table of yearly company financials
// (xlsx, csv, json or an html table) into a models.CompanySeries.
package ingest

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"financial_health/pkg/models"
)

// Column names as they appear in uploaded tables.
const (
	ColYear               = "Year"
	ColCurrentAssets      = "Current_Assets"
	ColCurrentLiabilities = "Current_Liabilities"
	ColTotalLiabilities   = "Total_Liabilities"
	ColTotalAssets        = "Total_Assets"
	ColNetProfit          = "Net_Profit"
	ColRevenue            = "Revenue"
	ColShares             = "Shares"
)

// RequiredColumns lists the columns every table must carry.
var RequiredColumns = []string{
	ColYear,
	ColCurrentAssets,
	ColCurrentLiabilities,
	ColTotalLiabilities,
	ColTotalAssets,
	ColNetProfit,
	ColRevenue,
}

// Table is a rectangular grid: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Format identifies an input encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// DetectFormat infers the format from a file name.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".json", ".hjson":
		return FormatJSON, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: unsupported file type %q (want .xlsx, .csv, .json or .html)", models.ErrInvalidInput, filepath.Ext(name))
}

// CompanyName derives a display name from an uploaded file name.
func CompanyName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Read decodes r according to the extension of name and builds the series.
func Read(name string, r io.Reader) (*models.CompanySeries, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	var table *Table
	switch format {
	case FormatXLSX:
		table, err = ReadXLSX(r)
	case FormatCSV:
		table, err = ReadCSV(r)
	case FormatJSON:
		table, err = ReadJSON(r)
	case FormatHTML:
		table, err = ReadHTML(r)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(name), err)
	}

	return ToSeries(CompanyName(name), table)
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) (*models.CompanySeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(path, f)
}

// ToSeries maps table columns onto financial records. Header matching
// ignores case, spaces, underscores and hyphens.
func ToSeries(company string, t *Table) (*models.CompanySeries, error) {
	if t == nil || len(t.Header) == 0 {
		return nil, fmt.Errorf("%w: table has no header row", models.ErrMissingField)
	}

	index := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		key := normalizeColumnName(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	for _, col := range RequiredColumns {
		if _, ok := index[normalizeColumnName(col)]; !ok {
			return nil, fmt.Errorf("%w: required column %q not found", models.ErrMissingField, col)
		}
	}
	sharesIdx, hasShares := index[normalizeColumnName(ColShares)]

	var records []models.FinancialRecord
	for i, row := range t.Rows {
		if blankRow(row) {
			continue
		}
		line := i + 2 // 1-based, after the header

		cell := func(col string) string {
			idx := index[normalizeColumnName(col)]
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		num := func(col string) (float64, error) {
			v, err := parseNumber(cell(col))
			if err != nil {
				return 0, fmt.Errorf("%w: row %d column %s: %v", models.ErrInvalidInput, line, col, err)
			}
			return v, nil
		}

		year, err := parseYear(cell(ColYear))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d column %s: %v", models.ErrInvalidInput, line, ColYear, err)
		}

		rec := models.FinancialRecord{Year: year}
		fields := []struct {
			col string
			dst *float64
		}{
			{ColCurrentAssets, &rec.CurrentAssets},
			{ColCurrentLiabilities, &rec.CurrentLiabilities},
			{ColTotalLiabilities, &rec.TotalLiabilities},
			{ColTotalAssets, &rec.TotalAssets},
			{ColNetProfit, &rec.NetProfit},
			{ColRevenue, &rec.Revenue},
		}
		for _, f := range fields {
			if *f.dst, err = num(f.col); err != nil {
				return nil, err
			}
		}

		if hasShares && sharesIdx < len(row) && strings.TrimSpace(row[sharesIdx]) != "" {
			raw, err := num(ColShares)
			if err != nil {
				return nil, err
			}
			shares, err := models.NewSharesOutstanding(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", line, err)
			}
			rec.Shares = models.SomeShares(shares)
		}

		records = append(records, rec)
	}

	return models.NewCompanySeries(company, records)
}

func normalizeColumnName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "\ufeff")
	r := strings.NewReplacer(" ", "", "_", "", "-", "", ".", "")
	return r.Replace(name)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber accepts thousands separators, currency symbols and
// accounting-style negatives such as "(1,200)".
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.NewReplacer(",", "", "₹", "", "$", "", " ", "", "\u00a0", "").Replace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	if negative {
		v = -v
	}
	return v, nil
}

func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "FY") {
		s = strings.TrimSpace(s[2:])
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("year %q is not a whole number", s)
	}
	if v <= 0 || v >= 10000 {
		return 0, fmt.Errorf("year %q is out of range", s)
	}
	return int(v), nil
}
