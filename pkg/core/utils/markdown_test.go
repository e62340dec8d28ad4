package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkdown(t *testing.T) {
	assert.Equal(t, "# Title", CleanMarkdown("```markdown\n# Title\n```"))
	assert.Equal(t, "text", CleanMarkdown("```\ntext\n```"))
	assert.Equal(t, "plain", CleanMarkdown("  plain  "))
}

func TestRenderHTML_Tables(t *testing.T) {
	out, err := RenderHTML("## Ratios\n\n| Metric | Value |\n|---|---|\n| Current Ratio | 1.50 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<h2>Ratios</h2>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Current Ratio</td>")
}
