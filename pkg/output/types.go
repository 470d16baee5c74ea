package output

import (
	"path/filepath"

	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/constants"
	"github.com/ajxudir/wsbump/pkg/outdated"
	"github.com/ajxudir/wsbump/pkg/update"
	"github.com/ajxudir/wsbump/pkg/workspace"
)

// Outcomes of a bump run, as reported in BumpSummary.Outcome.
const (
	OutcomeNoUpdates        = "no_updates"
	OutcomeNothingSelected  = "nothing_selected"
	OutcomeUpdated          = "updated"
	OutcomeInvocationFailed = "invocation_failed"
)

// BumpResult represents the output data for a bump run.
type BumpResult struct {
	Summary  BumpSummary   `json:"summary"`
	Packages []BumpPackage `json:"packages"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// BumpSummary holds summary statistics for a bump run.
//
// Fields:
//   - Outcome: One of the Outcome* constants
//   - TotalPackages: Dependency rows acted upon
//   - UpdatedPackages: Rows rewritten, or that would be in a dry run
//   - NotDeclaredPackages: Rows with no rewritable declaration
//   - AlreadyCurrentPackages: Rows whose manifest already declares the new version
//   - FailedPackages: Rows whose manifest could not be read or written
//   - ManifestsWritten: Manifests replaced on disk
//   - DryRun: Whether writing was suppressed
//   - PreferLatest: Whether the latest column was preferred
type BumpSummary struct {
	Outcome                string `json:"outcome"`
	TotalPackages          int    `json:"total_packages"`
	UpdatedPackages        int    `json:"updated_packages"`
	NotDeclaredPackages    int    `json:"not_declared_packages"`
	AlreadyCurrentPackages int    `json:"already_current_packages"`
	FailedPackages         int    `json:"failed_packages"`
	ManifestsWritten       int    `json:"manifests_written"`
	DryRun                 bool   `json:"dry_run"`
	PreferLatest           bool   `json:"prefer_latest"`
}

// BumpPackage is one dependency of one workspace in a bump run.
type BumpPackage struct {
	Workspace string `json:"workspace"`
	Manifest  string `json:"manifest"`
	Name      string `json:"name"`
	Current   string `json:"current"`
	New       string `json:"new"`
	Bump      string `json:"bump,omitempty"`
	Status    string `json:"status"`
}

// NewBumpResult flattens per-workspace update results. Manifest paths are
// made relative to workDir where possible.
func NewBumpResult(results []*update.Result, workDir string, dryRun, preferLatest bool) *BumpResult {
	res := &BumpResult{
		Summary: BumpSummary{
			Outcome:      OutcomeUpdated,
			DryRun:       dryRun,
			PreferLatest: preferLatest,
		},
		Packages: []BumpPackage{},
	}

	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Written {
			res.Summary.ManifestsWritten++
		}
		manifest := relativePath(workDir, r.Path)
		for _, c := range r.Changes {
			res.Packages = append(res.Packages, BumpPackage{
				Workspace: r.Workspace,
				Manifest:  manifest,
				Name:      c.Dependency,
				Current:   c.From,
				New:       c.To,
				Bump:      c.Bump,
				Status:    c.Status,
			})
			res.Summary.TotalPackages++
			switch c.Status {
			case constants.StatusUpdated, constants.StatusPlanned:
				res.Summary.UpdatedPackages++
			case constants.StatusNotDeclared:
				res.Summary.NotDeclaredPackages++
			case constants.StatusAlreadyCurrent:
				res.Summary.AlreadyCurrentPackages++
			case constants.StatusFailed:
				res.Summary.FailedPackages++
			}
		}
	}
	return res
}

// OutdatedResult represents the output data for the outdated command.
type OutdatedResult struct {
	Summary  OutdatedSummary   `json:"summary"`
	Packages []OutdatedPackage `json:"packages"`
	Warnings []string          `json:"warnings,omitempty"`
}

// OutdatedSummary holds summary statistics for outdated results.
type OutdatedSummary struct {
	TotalPackages    int `json:"total_packages"`
	OutdatedPackages int `json:"outdated_packages"`
	UpToDatePackages int `json:"uptodate_packages"`
	HasMajor         int `json:"has_major"`
	HasMinor         int `json:"has_minor"`
	HasPatch         int `json:"has_patch"`
}

// OutdatedPackage is one targeted row of the outdated report together with
// the version a bump would select.
type OutdatedPackage struct {
	Workspace string `json:"workspace"`
	Name      string `json:"name"`
	Current   string `json:"current"`
	Wanted    string `json:"wanted"`
	Latest    string `json:"latest"`
	Selected  string `json:"selected"`
	Bump      string `json:"bump,omitempty"`
	Status    string `json:"status"`
}

// NewOutdatedResult builds the outdated view of rows. Rows outside the
// target set of opts are left out.
func NewOutdatedResult(rows []outdated.Row, opts config.Options) *OutdatedResult {
	res := &OutdatedResult{Packages: []OutdatedPackage{}}
	for _, row := range rows {
		if !opts.IsTargeted(row.Dependency) {
			continue
		}
		selected := outdated.NewVersion(row, opts.PreferLatest)
		pkg := OutdatedPackage{
			Workspace: row.Workspace,
			Name:      row.Dependency,
			Current:   row.Current,
			Wanted:    row.Wanted,
			Latest:    row.Latest,
			Selected:  selected,
			Bump:      outdated.BumpKind(row.Current, selected),
			Status:    constants.StatusUpToDate,
		}
		res.Summary.TotalPackages++
		if outdated.WantsUpdate(row, opts.PreferLatest) {
			pkg.Status = constants.StatusOutdated
			res.Summary.OutdatedPackages++
			switch pkg.Bump {
			case outdated.BumpMajor:
				res.Summary.HasMajor++
			case outdated.BumpMinor:
				res.Summary.HasMinor++
			case outdated.BumpPatch:
				res.Summary.HasPatch++
			}
		} else {
			res.Summary.UpToDatePackages++
		}
		res.Packages = append(res.Packages, pkg)
	}
	return res
}

// WorkspacesResult represents the output data for the workspaces command.
type WorkspacesResult struct {
	Root       string           `json:"root"`
	Workspaces []WorkspaceEntry `json:"workspaces"`
}

// WorkspaceEntry is one entry of the workspace mapping, the root included.
type WorkspaceEntry struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Manifest string `json:"manifest"`
}

// NewWorkspacesResult lists mapping in discovery order, root first.
func NewWorkspacesResult(mapping *workspace.Mapping, manifest string) *WorkspacesResult {
	res := &WorkspacesResult{Root: mapping.RootName(), Workspaces: []WorkspaceEntry{}}
	for _, name := range mapping.Names() {
		location, _ := mapping.Location(name)
		display := location
		if display == "" {
			display = "."
		}
		res.Workspaces = append(res.Workspaces, WorkspaceEntry{
			Name:     name,
			Location: display,
			Manifest: filepath.ToSlash(filepath.Join(location, manifest)),
		})
	}
	return res
}

func relativePath(base, path string) string {
	if base == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
