// Package constants provides the status values and display markers shared by
// the bump pipeline and its output formats.
package constants

// Per-dependency statuses reported after a bump.
const (
	// StatusUpdated indicates the manifest was rewritten with the new version.
	StatusUpdated = "Updated"

	// StatusPlanned indicates the change would be written without --dry-run.
	StatusPlanned = "Planned"

	// StatusNotDeclared indicates the manifest has no rewritable declaration
	// for the dependency, e.g. a tag, URL, or workspace: protocol range.
	StatusNotDeclared = "NotDeclared"

	// StatusAlreadyCurrent indicates the manifest already declares the
	// selected version, so there was nothing to rewrite.
	StatusAlreadyCurrent = "AlreadyCurrent"

	// StatusFailed indicates the manifest of the workspace could not be
	// read or written.
	StatusFailed = "Failed"

	// StatusOutdated is used by the outdated command for rows that would be
	// bumped.
	StatusOutdated = "Outdated"

	// StatusUpToDate is used by the outdated command for rows whose selected
	// version equals the current one.
	StatusUpToDate = "UpToDate"
)

// PlaceholderNA is shown when a value is not available.
const PlaceholderNA = "#N/A"

// Status icons.
const (
	IconSuccess = "🟢"
	IconPending = "🟡"
	IconWarning = "🟠"
	IconError   = "❌"
	IconInfo    = "🔵"

	// IconCheckmarkBox marks successful config validation.
	IconCheckmarkBox = "✅"

	IconWarn = "⚠️"
)

// StatusIcon returns the icon for a status, or "" for unknown statuses.
func StatusIcon(status string) string {
	switch status {
	case StatusUpdated, StatusUpToDate, StatusAlreadyCurrent:
		return IconSuccess
	case StatusPlanned:
		return IconPending
	case StatusOutdated:
		return IconInfo
	case StatusNotDeclared:
		return IconWarning
	case StatusFailed:
		return IconError
	default:
		return ""
	}
}
