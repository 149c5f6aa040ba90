package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/young-ng/young-ng/internal/git"
	"github.com/young-ng/young-ng/internal/scaffold"
)

var (
	applyRoot       string
	applyConfigPath string
	applyInstall    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the lint/format setup to an existing Angular project",
	Long: `Apply the lint/format setup to an existing project without generating one.

Fills in missing package.json scripts and devDependencies, forces strict
compiler options in tsconfig.json (if present) and writes the overlay files.
Requires package.json in the project root.

Use --install to also install the lint/format tooling.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyRoot, "root", ".", "Project root to patch")
	applyCmd.Flags().StringVar(&applyConfigPath, "config", "", "Path to a young-ng.yml (default: <root>/young-ng.yml if present)")
	applyCmd.Flags().BoolVar(&applyInstall, "install", false, "Install the lint/format dev dependencies afterwards")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, err := resolveRoot(applyRoot)
	if err != nil {
		return fail(err)
	}

	cfg, err := loadConfig(root, applyConfigPath)
	if err != nil {
		return fail(err)
	}

	s := scaffold.New(cfg, root, nil)
	// nothing runs without --install, so no runner (or daemon) is needed
	if applyInstall {
		r, release, err := newRunner(ctx, cfg)
		if err != nil {
			return fail(err)
		}
		defer release()
		s.Runner = r
	}
	s.Git = git.NewChecker(root)
	s.Stdout = cmd.OutOrStdout()
	s.Stderr = cmd.ErrOrStderr()

	if err := s.Apply(ctx, applyInstall); err != nil {
		return fail(err)
	}

	scaffold.PrintApplied(cfg, applyInstall)
	return nil
}
