package ingest

import (
	"bytes"
	"strings"
	"testing"

	"financial_health/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Year,Current_Assets,Current_Liabilities,Total_Liabilities,Total_Assets,Net_Profit,Revenue
2022,"1,500",1000,4000,10000,800,10000
2021,1200,1000,4500,9000,(50),9500

2023,1800,900,3800,11000,1200,12000
`

func TestRead_CSV(t *testing.T) {
	series, err := Read("Acme Ltd.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, "Acme Ltd", series.Name)
	require.Len(t, series.Records, 3)
	assert.Equal(t, []int{2021, 2022, 2023}, []int{series.Records[0].Year, series.Records[1].Year, series.Records[2].Year})
	assert.Equal(t, -50.0, series.Records[0].NetProfit)
	assert.Equal(t, 1500.0, series.Records[1].CurrentAssets)
	assert.False(t, series.Records[0].Shares.Valid)
}

func TestRead_HeaderNormalization(t *testing.T) {
	csv := "year,current assets,CURRENT-LIABILITIES,Total Liabilities,total_assets,Net Profit,revenue,shares\n" +
		"FY2023,100,50,40,200,10,100,1000000\n"

	series, err := Read("x.csv", strings.NewReader(csv))
	require.NoError(t, err)

	rec := series.Latest()
	assert.Equal(t, 2023, rec.Year)
	assert.Equal(t, 50.0, rec.CurrentLiabilities)
	assert.True(t, rec.Shares.Valid)
	assert.Equal(t, models.SharesOutstanding(1_000_000), rec.Shares.Value)
}

func TestRead_MissingColumn(t *testing.T) {
	csv := "Year,Current_Assets,Current_Liabilities,Total_Liabilities,Total_Assets,Revenue\n2023,1,1,1,1,1\n"

	_, err := Read("x.csv", strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMissingField)
	assert.Contains(t, err.Error(), "Net_Profit")
}

func TestRead_BadNumber(t *testing.T) {
	csv := "Year,Current_Assets,Current_Liabilities,Total_Liabilities,Total_Assets,Net_Profit,Revenue\n2023,abc,1,1,1,1,1\n"

	_, err := Read("x.csv", strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "row 2 column Current_Assets")
}

func TestRead_DuplicateYear(t *testing.T) {
	csv := "Year,Current_Assets,Current_Liabilities,Total_Liabilities,Total_Assets,Net_Profit,Revenue\n" +
		"2023,1,1,1,1,1,1\n2023,2,2,2,2,2,2\n"

	_, err := Read("x.csv", strings.NewReader(csv))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestRead_HeaderOnly(t *testing.T) {
	csv := "Year,Current_Assets,Current_Liabilities,Total_Liabilities,Total_Assets,Net_Profit,Revenue\n"

	_, err := Read("x.csv", strings.NewReader(csv))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("report.txt", strings.NewReader(""))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestRead_JSON(t *testing.T) {
	doc := `[
		{"Year": 2022, "Current_Assets": 150, "Current_Liabilities": 100, "Total_Liabilities": 40,
		 "Total_Assets": 100, "Net_Profit": 8, "Revenue": 100, "Shares": 1000},
		{"Year": 2023, "Current_Assets": 200, "Current_Liabilities": 100, "Total_Liabilities": 50,
		 "Total_Assets": 100, "Net_Profit": 12, "Revenue": 100, "Shares": 1000},
	]`

	series, err := Read("beta.json", strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "beta", series.Name)
	require.Len(t, series.Records, 2)
	assert.Equal(t, 12.0, series.Latest().NetProfit)
	assert.True(t, series.AllHaveShares())
}

func TestRead_HTML(t *testing.T) {
	page := `<html><body>
	<p>Annual figures</p>
	<table>
		<tr><th>Year</th><th>Current Assets</th><th>Current Liabilities</th><th>Total Liabilities</th>
		    <th>Total Assets</th><th>Net Profit</th><th>Revenue</th></tr>
		<tr><td>2023</td><td>₹ 1,800</td><td>900</td><td>3800</td><td>11000</td><td>1200</td><td>12000</td></tr>
	</table>
	<table><tr><td>ignored</td></tr></table>
	</body></html>`

	series, err := Read("gamma.html", strings.NewReader(page))
	require.NoError(t, err)

	require.Len(t, series.Records, 1)
	assert.Equal(t, 1800.0, series.Latest().CurrentAssets)
}

func TestRead_HTMLWithoutTable(t *testing.T) {
	_, err := Read("gamma.htm", strings.NewReader("<html><body><p>nothing</p></body></html>"))
	assert.ErrorIs(t, err, models.ErrMissingField)
}

func TestRead_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Year", "Current_Assets", "Current_Liabilities", "Total_Liabilities", "Total_Assets", "Net_Profit", "Revenue"},
		{2022, 1500, 1000, 4000, 10000, 800, 10000},
		{2023, 1800.5, 900, 3800, 11000, 1200, 12000},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	series, err := Read("delta.xlsx", &buf)
	require.NoError(t, err)

	assert.Equal(t, "delta", series.Name)
	require.Len(t, series.Records, 2)
	assert.Equal(t, 1800.5, series.Latest().CurrentAssets)
	assert.Equal(t, 2022, series.Records[0].Year)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1,234.5", 1234.5, false},
		{"(200)", -200, false},
		{"$ 10", 10, false},
		{"-3", -3, false},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"12abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNumber(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"2023", 2023, false},
		{"FY2022", 2022, false},
		{"fy 2021", 2021, false},
		{"2023.0", 2023, false},
		{"2023.5", 0, true},
		{"1e30", 0, true},
		{"0", 0, true},
		{"-2020", 0, true},
		{"10000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseYear(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
