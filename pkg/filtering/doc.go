// Package filtering selects the actionable rows of an outdated report and
// groups them by workspace.
//
// A row is kept when its dependency is targeted (or no targets were given)
// and its decided version differs from the installed one:
//
//	groups := filtering.FilterAndGroup(rows, opts)
//	for _, name := range groups.Workspaces() {
//	    for _, row := range groups.Rows(name) { ... }
//	}
//
// Workspaces are listed in the order they first appear in the report, and
// rows keep their report order within a workspace.
package filtering
