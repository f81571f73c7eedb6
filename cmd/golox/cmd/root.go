package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via -ldflags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// exitCode is the process exit code the running subcommand decided on.
// Cobra's own error return only distinguishes success from failure; golox's
// exit codes (64 usage, 65 static error, 70 runtime error) need a finer
// signal than that, so RunE funcs set this directly instead of relying on
// Execute's return value.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "golox [script]",
	Short: "Lox interpreter",
	Long: `golox is a tree-walking interpreter for Lox, a small dynamically
typed, lexically scoped, class-based scripting language.

Run a script file:

  golox script.lox

Run with no arguments to start an interactive prompt.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		runPrompt(cmd.OutOrStdout(), cmd.ErrOrStderr())
		return nil
	case 1:
		runFile(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		return nil
	default:
		fmt.Fprintln(os.Stderr, "Usage: golox [script]")
		exitCode = 64
		return nil
	}
}

// Main runs the CLI and exits the process with golox's exit code.
func Main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
