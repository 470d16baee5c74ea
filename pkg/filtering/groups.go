package filtering

import (
	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/outdated"
	"github.com/ajxudir/wsbump/pkg/verbose"
)

// Groups maps workspace names to their actionable rows, in first-seen order.
type Groups struct {
	byWorkspace *orderedmap.OrderedMap
}

// NewGroups returns an empty grouping.
func NewGroups() *Groups {
	return &Groups{byWorkspace: orderedmap.New()}
}

// Add appends row to its workspace's group.
func (g *Groups) Add(row outdated.Row) {
	rows := g.Rows(row.Workspace)
	g.byWorkspace.Set(row.Workspace, append(rows, row))
}

// Workspaces returns the workspace names in first-seen order.
func (g *Groups) Workspaces() []string {
	return g.byWorkspace.Keys()
}

// Rows returns the rows of workspace, or nil if it has none.
func (g *Groups) Rows(workspace string) []outdated.Row {
	v, ok := g.byWorkspace.Get(workspace)
	if !ok {
		return nil
	}
	rows, _ := v.([]outdated.Row)
	return rows
}

// Len returns the total number of rows across all workspaces.
func (g *Groups) Len() int {
	total := 0
	for _, name := range g.Workspaces() {
		total += len(g.Rows(name))
	}
	return total
}

// Empty reports whether no row was kept.
func (g *Groups) Empty() bool {
	return len(g.Workspaces()) == 0
}

// IsSelected reports whether row should be updated under opts.
func IsSelected(row outdated.Row, opts config.Options) bool {
	return opts.IsTargeted(row.Dependency) && outdated.WantsUpdate(row, opts.PreferLatest)
}

// FilterAndGroup keeps the selected rows and groups them by workspace.
//
// Parameters:
//   - rows: Parsed report rows in report order
//   - opts: Target set and latest preference
//
// Returns:
//   - *Groups: Selected rows grouped by workspace; never nil
func FilterAndGroup(rows []outdated.Row, opts config.Options) *Groups {
	groups := NewGroups()
	for _, row := range rows {
		switch {
		case !opts.IsTargeted(row.Dependency):
			verbose.RowSkipped(row.Dependency, row.Workspace, "not targeted")
		case !outdated.WantsUpdate(row, opts.PreferLatest):
			verbose.RowSkipped(row.Dependency, row.Workspace, "already at "+row.Current)
		default:
			groups.Add(row)
		}
	}
	return groups
}
