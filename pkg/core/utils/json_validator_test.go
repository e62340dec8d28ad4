package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"strict json", `[{"Year": 2023, "Revenue": 100}]`},
		{"trailing comma", `[{"Year": 2023, "Revenue": 100,},]`},
		{"hjson comments", "[\n  // fiscal 2023\n  {Year: 2023, Revenue: 100}\n]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rows []map[string]interface{}
			_, err := SmartParse(tc.input, &rows)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.EqualValues(t, 2023, rows[0]["Year"])
			assert.EqualValues(t, 100, rows[0]["Revenue"])
		})
	}
}

func TestParseHJSON(t *testing.T) {
	out, err := ParseHJSON("{a: 1}")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, out)
}
