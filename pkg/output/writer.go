package output

import (
	"fmt"
	"io"

	"github.com/ajxudir/wsbump/pkg/constants"
)

// WriteBumpResult writes bump results in the specified format.
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format; FormatTable renders PrintBumpTable
//   - result: Bump result data to write
//
// Returns:
//   - error: When format is unsupported or the write fails
func WriteBumpResult(w io.Writer, format Format, result *BumpResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatCSV:
		return writeBumpCSV(formatter, result)
	case FormatTable:
		PrintBumpTable(w, result)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeBumpCSV(f *Formatter, result *BumpResult) error {
	headers := []string{"WORKSPACE", "MANIFEST", "PACKAGE", "CURRENT", "NEW", "BUMP", "STATUS"}
	rows := make([][]string, 0, len(result.Packages))
	for _, p := range result.Packages {
		rows = append(rows, []string{p.Workspace, p.Manifest, p.Name, p.Current, p.New, p.Bump, p.Status})
	}
	return f.WriteCSV(headers, rows)
}

// PrintBumpTable renders the bump result as a table followed by a one-line
// summary. A result without packages prints only the summary.
func PrintBumpTable(w io.Writer, result *BumpResult) {
	if len(result.Packages) > 0 {
		rows := make([][]string, 0, len(result.Packages))
		for _, p := range result.Packages {
			rows = append(rows, []string{
				p.Workspace, p.Name, p.Current, p.New, valueOrNA(p.Bump),
				statusCell(p.Status),
			})
		}
		NewTable().
			AddColumn("WORKSPACE").
			AddColumn("PACKAGE").
			AddColumn("CURRENT").
			AddColumn("NEW").
			AddColumn("BUMP").
			AddColumn("STATUS").
			Render(w, rows)
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintln(w, bumpSummaryLine(result.Summary))
}

func bumpSummaryLine(s BumpSummary) string {
	switch s.Outcome {
	case OutcomeNoUpdates:
		return "No outdated dependencies."
	case OutcomeNothingSelected:
		return "Nothing to update."
	case OutcomeInvocationFailed:
		return "Outdated check failed; no manifests were changed."
	}

	verb := "Updated"
	if s.DryRun {
		verb = "Would update"
	}
	line := fmt.Sprintf("%s %d of %d dependencies", verb, s.UpdatedPackages, s.TotalPackages)
	if !s.DryRun {
		line += fmt.Sprintf(" in %d manifest(s)", s.ManifestsWritten)
	}
	if s.NotDeclaredPackages > 0 {
		line += fmt.Sprintf(", %d not declared", s.NotDeclaredPackages)
	}
	if s.AlreadyCurrentPackages > 0 {
		line += fmt.Sprintf(", %d already current", s.AlreadyCurrentPackages)
	}
	if s.FailedPackages > 0 {
		line += fmt.Sprintf(", %d failed", s.FailedPackages)
	}
	return line + "."
}

// WriteOutdatedResult writes outdated results in the specified format.
func WriteOutdatedResult(w io.Writer, format Format, result *OutdatedResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatCSV:
		headers := []string{"WORKSPACE", "PACKAGE", "CURRENT", "WANTED", "LATEST", "SELECTED", "BUMP", "STATUS"}
		rows := make([][]string, 0, len(result.Packages))
		for _, p := range result.Packages {
			rows = append(rows, []string{p.Workspace, p.Name, p.Current, p.Wanted, p.Latest, p.Selected, p.Bump, p.Status})
		}
		return formatter.WriteCSV(headers, rows)
	case FormatTable:
		PrintOutdatedTable(w, result)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintOutdatedTable renders the outdated result as a table.
func PrintOutdatedTable(w io.Writer, result *OutdatedResult) {
	if len(result.Packages) == 0 {
		_, _ = fmt.Fprintln(w, "No outdated dependencies.")
		return
	}

	rows := make([][]string, 0, len(result.Packages))
	for _, p := range result.Packages {
		rows = append(rows, []string{
			p.Workspace, p.Name, p.Current, p.Wanted, p.Latest, p.Selected,
			valueOrNA(p.Bump), statusCell(p.Status),
		})
	}
	NewTable().
		AddColumn("WORKSPACE").
		AddColumn("PACKAGE").
		AddColumn("CURRENT").
		AddColumn("WANTED").
		AddColumn("LATEST").
		AddColumn("SELECTED").
		AddColumn("BUMP").
		AddColumn("STATUS").
		Render(w, rows)

	s := result.Summary
	_, _ = fmt.Fprintf(w, "\n%d outdated (%d major, %d minor, %d patch), %d up to date.\n",
		s.OutdatedPackages, s.HasMajor, s.HasMinor, s.HasPatch, s.UpToDatePackages)
}

// WriteWorkspacesResult writes the workspace mapping in the specified format.
func WriteWorkspacesResult(w io.Writer, format Format, result *WorkspacesResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatCSV:
		rows := make([][]string, 0, len(result.Workspaces))
		for _, ws := range result.Workspaces {
			rows = append(rows, []string{ws.Name, ws.Location, ws.Manifest})
		}
		return formatter.WriteCSV([]string{"NAME", "LOCATION", "MANIFEST"}, rows)
	case FormatTable:
		rows := make([][]string, 0, len(result.Workspaces))
		for _, ws := range result.Workspaces {
			rows = append(rows, []string{ws.Name, ws.Location, ws.Manifest})
		}
		NewTable().AddColumn("NAME").AddColumn("LOCATION").AddColumn("MANIFEST").Render(w, rows)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func statusCell(status string) string {
	if icon := constants.StatusIcon(status); icon != "" {
		return icon + " " + status
	}
	return status
}

func valueOrNA(v string) string {
	if v == "" {
		return constants.PlaceholderNA
	}
	return v
}
