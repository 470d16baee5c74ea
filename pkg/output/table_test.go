package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	table := NewTable()
	require.NotNil(t, table)
	assert.Equal(t, 0, table.ColumnCount())
	assert.Equal(t, "  ", table.separator)
}

func TestTable_AddColumn(t *testing.T) {
	table := NewTable().AddColumn("NAME").AddColumn("PM")
	assert.Equal(t, 2, table.ColumnCount())
	assert.Equal(t, 4, table.GetColumnWidth(0))
	assert.Equal(t, 2, table.GetColumnWidth(1))
	assert.Equal(t, 0, table.GetColumnWidth(5))
}

func TestTable_UpdateWidths(t *testing.T) {
	table := NewTable().AddColumn("A").AddColumn("B")
	table.UpdateWidths("long-value", "x", "ignored")
	assert.Equal(t, 10, table.GetColumnWidth(0))
	assert.Equal(t, 1, table.GetColumnWidth(1))
}

func TestTable_Rows(t *testing.T) {
	table := NewTable().AddColumn("NAME").AddColumn("VERSION")
	table.UpdateWidths("react", "1.0.0")

	assert.Equal(t, "NAME   VERSION", table.HeaderRow())
	assert.Equal(t, "-----  -------", table.SeparatorRow())
	assert.Equal(t, "react  1.0.0", table.FormatRow("react", "1.0.0"))
	assert.Equal(t, "a", table.FormatRow("a"))
}

func TestTable_WithSeparator(t *testing.T) {
	table := NewTable().WithSeparator(" | ").AddColumn("A").AddColumn("B")
	assert.Equal(t, "A | B", table.HeaderRow())
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	NewTable().AddColumn("WS").AddColumn("PKG").Render(&buf, [][]string{
		{"web", "react"},
		{"api-server", "koa"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "WS          PKG", lines[0])
	assert.Equal(t, "----------  -----", lines[1])
	assert.Equal(t, "web         react", lines[2])
	assert.Equal(t, "api-server  koa", lines[3])
}

func TestToWidth(t *testing.T) {
	assert.Equal(t, "ab  ", ToWidth("ab", 4))
	assert.Equal(t, "abcdef", ToWidth("abcdef", 4))
	assert.Equal(t, "ab", ToWidth("ab", 0))
	assert.Equal(t, 2, DisplayWidth("世"))
	assert.Equal(t, "世  ", ToWidth("世", 4))
}
