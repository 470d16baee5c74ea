package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajxudir/wsbump/pkg/errors"
	"github.com/ajxudir/wsbump/pkg/output"
	"github.com/ajxudir/wsbump/pkg/workspace"
)

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List the workspaces and their manifests",
	Args:  cobra.NoArgs,
	RunE:  runWorkspaces,
}

// runWorkspaces resolves the workspace mapping and prints it, root first.
func runWorkspaces(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFlag()
	if err != nil {
		return err
	}

	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	mapping, err := workspace.NewResolver(cfg).Resolve(cmd.Context(), cfg.WorkingDir)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to resolve workspaces: %w", err))
	}

	result := output.NewWorkspacesResult(mapping, cfg.Manifest)
	if err := output.WriteWorkspacesResult(cmd.OutOrStdout(), format, result); err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("failed to write output: %w", err))
	}
	return nil
}
