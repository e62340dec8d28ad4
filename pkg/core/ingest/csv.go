package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"financial_health/pkg/models"
)

// ReadCSV reads a comma-separated table with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %v", models.ErrInvalidInput, err)
	}
	return tableFromRows(rows), nil
}
