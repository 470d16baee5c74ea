package update

import (
	"context"
	"fmt"

	"github.com/ajxudir/wsbump/pkg/config"
	"github.com/ajxudir/wsbump/pkg/constants"
	"github.com/ajxudir/wsbump/pkg/filtering"
	"github.com/ajxudir/wsbump/pkg/outdated"
	"github.com/ajxudir/wsbump/pkg/verbose"
	"github.com/ajxudir/wsbump/pkg/workspace"
)

// Change is the outcome for one dependency of one workspace.
type Change struct {
	Dependency string `json:"dependency"`
	From       string `json:"current"`
	To         string `json:"new"`
	Bump       string `json:"bump,omitempty"`
	Status     string `json:"status"`
}

// Result is the outcome for one workspace manifest.
type Result struct {
	Workspace string   `json:"workspace"`
	Path      string   `json:"path"`
	Changes   []Change `json:"changes"`
	// Written is true when the manifest was rewritten on disk.
	Written bool `json:"written"`
}

// Changed reports whether any dependency was rewritten, or would be in a
// dry run.
func (r *Result) Changed() bool {
	for _, c := range r.Changes {
		if c.Status == constants.StatusUpdated || c.Status == constants.StatusPlanned {
			return true
		}
	}
	return false
}

// RewriteManifest applies every row to the manifest at path and writes it
// back once, only when its text changed and dryRun is false.
//
// Parameters:
//   - path: Manifest file of the workspace
//   - workspaceName: Workspace the rows belong to
//   - rows: Selected rows of that workspace, in report order
//   - preferLatest: Whether the latest column is preferred
//   - patcher: Rewrites one declaration in the manifest text
//   - dryRun: When true, nothing is written
//
// Returns:
//   - *Result: Per-dependency outcome; non-nil even on error
//   - error: When the manifest cannot be read, patched, or written
func RewriteManifest(path, workspaceName string, rows []outdated.Row, preferLatest bool, patcher VersionPatcher, dryRun bool) (*Result, error) {
	result := &Result{Workspace: workspaceName, Path: path}

	content, err := readFileFunc(path)
	if err != nil {
		markFailed(result, rows, preferLatest)
		return result, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	original := string(content)
	text := original
	for _, row := range rows {
		next := outdated.NewVersion(row, preferLatest)
		reason := "wanted"
		if next != row.Wanted {
			reason = "latest"
		}
		verbose.VersionSelected(row.Dependency, row.Current, next, reason)

		patched, err := patcher.ApplyVersionPatch(text, row.Dependency, next)
		if err != nil {
			markFailed(result, rows, preferLatest)
			return result, fmt.Errorf("failed to update %s in %s: %w", row.Dependency, path, err)
		}

		status := constants.StatusUpdated
		switch {
		case patched == text && patcher.Declares(text, row.Dependency):
			status = constants.StatusAlreadyCurrent
			verbose.Printf("%s: %s already declares %s", path, row.Dependency, next)
		case patched == text:
			status = constants.StatusNotDeclared
			verbose.Printf("%s: no rewritable declaration of %s", path, row.Dependency)
		case dryRun:
			status = constants.StatusPlanned
		}
		text = patched

		result.Changes = append(result.Changes, Change{
			Dependency: row.Dependency,
			From:       row.Current,
			To:         next,
			Bump:       outdated.BumpKind(row.Current, next),
			Status:     status,
		})
	}

	if text == original || dryRun {
		return result, nil
	}

	if err := writeFileFunc(path, []byte(text), 0o644); err != nil {
		for i := range result.Changes {
			if result.Changes[i].Status == constants.StatusUpdated {
				result.Changes[i].Status = constants.StatusFailed
			}
		}
		return result, fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	result.Written = true
	verbose.Infof("Wrote %s", path)
	return result, nil
}

func markFailed(result *Result, rows []outdated.Row, preferLatest bool) {
	result.Changes = result.Changes[:0]
	for _, row := range rows {
		next := outdated.NewVersion(row, preferLatest)
		result.Changes = append(result.Changes, Change{
			Dependency: row.Dependency,
			From:       row.Current,
			To:         next,
			Bump:       outdated.BumpKind(row.Current, next),
			Status:     constants.StatusFailed,
		})
	}
}

// Applier rewrites the manifests of grouped rows.
type Applier struct {
	Manifest string
	Patcher  VersionPatcher
	DryRun   bool

	// OnResult, when set, is called after each workspace is processed,
	// including the one that failed.
	OnResult func(*Result)
}

// NewApplier returns an Applier configured from cfg.
func NewApplier(cfg *config.Config, dryRun bool) *Applier {
	return &Applier{
		Manifest: cfg.Manifest,
		Patcher:  NewPatcher(cfg),
		DryRun:   dryRun,
	}
}

// Apply processes the groups one workspace at a time, in first-seen order.
//
// Processing stops at the first workspace that cannot be resolved or
// rewritten; manifests already written stay written. The results gathered so
// far are returned alongside the error.
func (a *Applier) Apply(ctx context.Context, mapping *workspace.Mapping, groups *filtering.Groups, opts config.Options) ([]*Result, error) {
	var results []*Result
	for _, name := range groups.Workspaces() {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		path, err := mapping.ManifestPath(opts.WorkingDir, name, a.Manifest)
		if err != nil {
			return results, err
		}

		result, err := RewriteManifest(path, name, groups.Rows(name), opts.PreferLatest, a.Patcher, a.DryRun)
		results = append(results, result)
		if a.OnResult != nil {
			a.OnResult(result)
		}
		if err != nil {
			return results, fmt.Errorf("workspace %q: %w", name, err)
		}
	}
	return results, nil
}
