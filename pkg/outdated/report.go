package outdated

import (
	"strings"
)

// Row is one dependency line of the outdated table.
type Row struct {
	Dependency string `json:"dependency"`
	Current    string `json:"current"`
	Wanted     string `json:"wanted"`
	Latest     string `json:"latest"`
	Workspace  string `json:"workspace"`
}

// ParseReport extracts the rows between the header and footer lines.
//
// The header is the first line starting with header; the footer is the first
// line after it starting with footer. Rows are split on runs of whitespace
// and read positionally as dependency, current, wanted, latest, workspace.
// Missing fields are left empty and extra fields ignored; a line that does
// not follow the column layout produces a misaligned row rather than an
// error.
//
// Parameters:
//   - text: Raw command output
//   - header: Header line prefix, e.g. "Package"
//   - footer: Footer line prefix, e.g. "Done"
//
// Returns:
//   - []Row: Rows in report order; nil when there is no header line
func ParseReport(text, header, footer string) []Row {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start := indexWithPrefix(lines, header, 0)
	if start < 0 {
		return nil
	}
	end := indexWithPrefix(lines, footer, start+1)
	if end < 0 {
		end = len(lines)
	}

	var rows []Row
	for _, line := range lines[start+1 : end] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, parseLine(line))
	}
	return rows
}

// HasHeader reports whether text contains a line starting with header.
func HasHeader(text, header string) bool {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return indexWithPrefix(lines, header, 0) >= 0
}

func indexWithPrefix(lines []string, prefix string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], prefix) {
			return i
		}
	}
	return -1
}

func parseLine(line string) Row {
	fields := strings.Fields(line)
	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return Row{
		Dependency: field(0),
		Current:    field(1),
		Wanted:     field(2),
		Latest:     field(3),
		Workspace:  field(4),
	}
}
