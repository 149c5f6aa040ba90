package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/young-ng/young-ng/internal/config"
	"github.com/young-ng/young-ng/internal/git"
	"github.com/young-ng/young-ng/internal/scaffold"
)

var (
	initRoot          string
	initConfigPath    string
	initRunnerMode    string
	initImage         string
	initKeepWorkspace bool
	initVerbose       bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold an Angular 20 project into the project root",
	Long: `Scaffold a strict, standalone Angular 20 project into the project root.

Steps:
  1. Generate the project with npm create @angular@20 in a temp workspace
  2. Copy the generated files into the project root (existing files are overwritten)
  3. Fill in missing package.json scripts and devDependencies
  4. Force strict compiler options in tsconfig.json (if present)
  5. Write .editorconfig, .prettierrc, ESLint and VSCode settings
  6. Install the lint/format tooling

Settings are read from young-ng.yml in the project root when present.
The temp workspace is removed afterwards unless --keep-workspace is set.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initRoot, "root", ".", "Project root to scaffold into")
	initCmd.Flags().StringVar(&initConfigPath, "config", "", "Path to a young-ng.yml (default: <root>/young-ng.yml if present)")
	initCmd.Flags().StringVar(&initRunnerMode, "runner", "", "Where to run npm: exec or docker (overrides runner.mode)")
	initCmd.Flags().StringVar(&initImage, "image", "", "Node.js image for --runner docker (overrides runner.image)")
	initCmd.Flags().BoolVar(&initKeepWorkspace, "keep-workspace", false, "Keep the temp workspace for inspection")
	initCmd.Flags().BoolVarP(&initVerbose, "verbose", "v", false, "Print every external command before running it")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, err := resolveRoot(initRoot)
	if err != nil {
		return fail(err)
	}

	cfg, err := loadConfig(root, initConfigPath)
	if err != nil {
		return fail(err)
	}
	if err := applyInitFlags(cmd, cfg); err != nil {
		return fail(err)
	}

	r, release, err := newRunner(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	defer release()

	s := scaffold.New(cfg, root, r)
	s.Git = git.NewChecker(root)
	s.Verbose = initVerbose
	s.Stdout = cmd.OutOrStdout()
	s.Stderr = cmd.ErrOrStderr()

	if err := s.Run(ctx); err != nil {
		return fail(err)
	}

	scaffold.PrintSuccess()
	return nil
}

// applyInitFlags lets explicitly set flags override the file and
// re-validates the result.
func applyInitFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("runner") {
		cfg.Runner.Mode = initRunnerMode
	}
	if flags.Changed("image") {
		cfg.Runner.Image = initImage
	}
	if flags.Changed("keep-workspace") {
		cfg.KeepWorkspace = initKeepWorkspace
	}
	cfg.ApplyDefaults()
	return cfg.Validate()
}
