package ingest

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"financial_health/pkg/core/utils"
	"financial_health/pkg/models"
)

// ReadJSON reads an array of row objects keyed by column name. Hand-edited
// files are accepted through utils.SmartParse (repair, then Hjson).
func ReadJSON(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var objects []map[string]interface{}
	if _, err := utils.SmartParse(string(raw), &objects); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	seen := map[string]bool{}
	var header []string
	for _, obj := range objects {
		for k := range obj {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)

	t := &Table{Header: header, Rows: make([][]string, 0, len(objects))}
	for _, obj := range objects {
		row := make([]string, len(header))
		for i, k := range header {
			row[i] = jsonCell(obj[k])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func jsonCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
