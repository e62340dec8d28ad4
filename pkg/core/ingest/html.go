package ingest

import (
	"fmt"
	"io"
	"strings"

	"financial_health/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

// ReadHTML reads the first <table> of an HTML document. The first row is
// the header whether it uses th or td cells.
func ReadHTML(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", models.ErrInvalidInput, err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no <table> element found", models.ErrMissingField)
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.Join(strings.Fields(cell.Text()), " "))
		})
		rows = append(rows, cells)
	})
	return tableFromRows(rows), nil
}
