// Package scaffold sequences a young-ng run: generate an Angular project in a
// temp workspace, copy it into the project root, patch its JSON files, write
// the overlay files and install the lint/format tooling.
package scaffold

import (
	"context"
	"fmt"
	"io"

	"github.com/young-ng/young-ng/internal/config"
	"github.com/young-ng/young-ng/internal/manifest"
	"github.com/young-ng/young-ng/internal/overlay"
	"github.com/young-ng/young-ng/internal/printer"
	"github.com/young-ng/young-ng/internal/runner"
	"github.com/young-ng/young-ng/internal/workspace"
)

// WorkspacePrefix names the temp directory the generator runs in.
const WorkspacePrefix = "young-ng-"

// Step identifies a stage of the pipeline.
type Step string

const (
	StepWorkspace      Step = "create workspace"
	StepGenerate       Step = "generate project"
	StepCopy           Step = "copy project"
	StepManifest       Step = "patch package.json"
	StepCompilerConfig Step = "patch tsconfig.json"
	StepOverlay        Step = "write overlay files"
	StepInstall        Step = "install dev dependencies"
)

// StepError records which step aborted the run.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// RepoChecker reports uncommitted changes in the project root.
type RepoChecker interface {
	IsGitRepository() (bool, error)
	IsWorkspaceClean() (bool, error)
	GetDirtyFiles() (string, error)
}

// Scaffolder runs the pipeline against one project root.
type Scaffolder struct {
	Config *config.Config
	Root   string
	Runner runner.Runner

	// Git is optional; when set, uncommitted changes in Root are reported
	// before anything is overwritten.
	Git RepoChecker

	// Overlays defaults to overlay.Default().
	Overlays []overlay.Entry

	// Verbose echoes every external command line before running it.
	Verbose bool

	// Stdout and Stderr receive subprocess output; nil means the process's own.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Scaffolder for root.
func New(cfg *config.Config, root string, r runner.Runner) *Scaffolder {
	return &Scaffolder{Config: cfg, Root: root, Runner: r}
}

// Run executes every step in order and stops at the first failure. Nothing
// under Root is touched before the generator has succeeded; after that, a
// failure leaves Root partially updated.
func (s *Scaffolder) Run(ctx context.Context) error {
	s.warnIfDirty()

	printer.Step("Create temp workspace...\n")
	ws, err := workspace.Create(WorkspacePrefix)
	if err != nil {
		return &StepError{StepWorkspace, err}
	}
	if s.Config.KeepWorkspace {
		ws.Keep()
	}
	defer s.release(ws)

	printer.Step("Scaffold Angular 20 (strict)...\n")
	if err := s.exec(ctx, s.Config.Generator, ws.Dir); err != nil {
		return &StepError{StepGenerate, err}
	}

	printer.Step("Copy Angular files into project root...\n")
	if err := workspace.CopyTree(ws.Path(s.Config.AppName), s.Root); err != nil {
		return &StepError{StepCopy, err}
	}

	if err := s.patchAndOverlay(); err != nil {
		return err
	}

	return s.install(ctx)
}

// Apply patches package.json and tsconfig.json and writes the overlay files
// in an existing project, optionally installing the dev dependencies.
func (s *Scaffolder) Apply(ctx context.Context, install bool) error {
	s.warnIfDirty()

	if err := s.patchAndOverlay(); err != nil {
		return err
	}
	if !install {
		return nil
	}
	return s.install(ctx)
}

func (s *Scaffolder) patchAndOverlay() error {
	printer.Step("Patch package.json scripts and devDependencies...\n")
	if err := manifest.PatchManifestFile(s.Root); err != nil {
		return &StepError{StepManifest, err}
	}

	patched, err := manifest.PatchCompilerConfigFile(s.Root)
	if err != nil {
		return &StepError{StepCompilerConfig, err}
	}
	if patched {
		printer.Step("Enforce strict mode in tsconfig.json...\n")
	}

	printer.Step("Apply .editorconfig / .prettierrc / ESLint / VSCode settings...\n")
	entries := s.Overlays
	if entries == nil {
		entries, err = overlay.Default()
		if err != nil {
			return &StepError{StepOverlay, err}
		}
	}
	if _, err := overlay.Apply(s.Root, entries); err != nil {
		return &StepError{StepOverlay, err}
	}

	return validateWrittenFiles(s.Root, entries)
}

func (s *Scaffolder) install(ctx context.Context) error {
	printer.Step("Install dev dependencies (eslint / prettier / angular-eslint)...\n")
	if err := s.exec(ctx, s.Config.Installer, s.Root); err != nil {
		return &StepError{StepInstall, err}
	}
	return nil
}

func (s *Scaffolder) exec(ctx context.Context, cmd config.CommandConfig, dir string) error {
	if s.Verbose {
		printer.Info("  $ %s\n", runner.CommandLine(cmd.Command, cmd.Args))
	}
	return runner.Check(ctx, s.Runner, cmd.Command, cmd.Args, runner.RunOpts{
		Dir:    dir,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	})
}

func (s *Scaffolder) release(ws *workspace.Workspace) {
	if ws.Kept() {
		printer.Info("Temp workspace kept at %s\n", ws.Dir)
		return
	}
	if err := ws.Cleanup(); err != nil {
		printer.Warning("%v\n", err)
	}
}

// warnIfDirty prints uncommitted changes in Root. It never fails the run.
func (s *Scaffolder) warnIfDirty() {
	if s.Git == nil {
		return
	}
	isRepo, err := s.Git.IsGitRepository()
	if err != nil || !isRepo {
		return
	}
	if clean, err := s.Git.IsWorkspaceClean(); err != nil || clean {
		return
	}
	dirty, err := s.Git.GetDirtyFiles()
	if err != nil || dirty == "" {
		return
	}
	printer.Warning("Project root has uncommitted changes; files may be overwritten.\n")
	printer.Println(dirty)
	printer.Println()
}

// PrintSuccess prints the follow-up commands after a full run
func PrintSuccess() {
	printer.Step("All done! Try:\n")
	printer.Printf("\n  npm start\n  npm run lint\n  npm run format\n\n")
}

// PrintApplied prints the summary after an apply-only run
func PrintApplied(cfg *config.Config, installed bool) {
	printer.Success("Applied young-ng configuration\n")
	if !installed {
		printer.Println("\nInstall the lint/format tooling with:")
		printer.Printf("\n  %s\n\n", runner.CommandLine(cfg.Installer.Command, cfg.Installer.Args))
	}
}
