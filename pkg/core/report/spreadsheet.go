package report

import (
	"bytes"
	"fmt"
	"io"

	"financial_health/pkg/core/analysis"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	SheetReport = "Financial Report"
	SheetTrends = "Ratio Trends"
	SheetPeer   = "Peer Comparison"
)

// WriteSpreadsheet writes the workbook for res to w. The summary sheet
// carries the display score; ratios are rounded to two decimals.
func WriteSpreadsheet(w io.Writer, res *analysis.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetReport); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	avg := res.Ratios.Averages
	summary := [][]interface{}{
		{"Metric", "Value"},
		{analysis.MetricCurrentRatio, round2(avg.CurrentRatio)},
		{analysis.MetricDebtRatio, round2(avg.DebtRatio)},
		{analysis.MetricProfitMargin, round2(avg.ProfitMargin)},
		{"Health Score", res.Display.Score},
		{"Rating", string(res.Display.Rating)},
	}
	if err := writeSheet(f, SheetReport, summary, bold); err != nil {
		return err
	}

	trends := [][]interface{}{{"Year", analysis.MetricCurrentRatio, analysis.MetricDebtRatio, analysis.MetricProfitMargin}}
	for _, p := range res.Trend {
		trends = append(trends, []interface{}{p.Year, round2(p.CurrentRatio), round2(p.DebtRatio), round2(p.ProfitMargin)})
	}
	if _, err := f.NewSheet(SheetTrends); err != nil {
		return err
	}
	if err := writeSheet(f, SheetTrends, trends, bold); err != nil {
		return err
	}

	if res.HasPeer() {
		peer := [][]interface{}{{"Metric", "Company A", "Company B"}}
		for _, row := range res.Peer.Rows {
			peer = append(peer, []interface{}{row.Metric, round2(row.CompanyA), round2(row.CompanyB)})
		}
		peer = append(peer, []interface{}{}, []interface{}{"Company", res.Peer.CompanyA, res.Peer.CompanyB})
		if _, err := f.NewSheet(SheetPeer); err != nil {
			return err
		}
		if err := writeSheet(f, SheetPeer, peer, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

// Spreadsheet returns the workbook bytes.
func Spreadsheet(res *analysis.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSpreadsheet(&buf, res); err != nil {
		return nil, fmt.Errorf("write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}
