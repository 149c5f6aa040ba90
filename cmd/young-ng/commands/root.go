package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "young-ng",
	Short: "young-ng - Opinionated Angular 20 project bootstrapper",
	Long: `young-ng scaffolds a strict, standalone Angular 20 project into the
current directory and layers an opinionated lint/format setup on top:
ESLint, Prettier, EditorConfig and VSCode workspace settings.

Existing package.json scripts and dev dependencies are never overwritten;
missing ones are filled in.`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	// e.g., "young-ng --install" instead of "young-ng apply --install"
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// Failures are printed once by the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
