// Package cli implements the cobra-based commands for dev-container.
//
// The root command itself launches the container session — the tool is
// invoked as `dev-container [image]` — and a single `resolve` subcommand
// prints the image the chain would pick without starting anything.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcelhollerbach/dev-container/internal/model"
)

// Global flag variables bound to cobra persistent flags on the root
// command, which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	var update, sysCaps bool

	rootCmd := &cobra.Command{
		Use:   "dev-container [image] [-- command...]",
		Short: "Launch an interactive container session for the current project",
		Long: `dev-container starts an interactive container session with the project
source tree and the host's display server (X11/Wayland) mounted in.

The container image is selected automatically by inspecting the project's
CI configuration, in priority order: a local .dev-container override file,
devcontainer.json, CircleCI, Travis CI, and GitHub Actions. A positional
image argument bypasses the selection entirely.

Examples:
  dev-container
  dev-container --update
  dev-container fedora:40 -- bash`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// At most one positional image; everything after -- is the command
		// to run inside the container.
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildRunOptions(cmd, args, update, sysCaps)
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().BoolVar(&update, "update", false, "Pull the image before starting the session")
	rootCmd.Flags().BoolVar(&sysCaps, "sys-cap", false, "Add SYS_ADMIN and SYS_PTRACE capabilities to the container")

	rootCmd.AddCommand(NewResolveCommand())

	return rootCmd
}

// buildRunOptions translates the command line into an explicit RunOptions
// value. Flag state flows through this struct, never ambiently.
func buildRunOptions(cmd *cobra.Command, args []string, update, sysCaps bool) (model.RunOptions, error) {
	projectDir, err := os.Getwd()
	if err != nil {
		return model.RunOptions{}, model.WrapCLIError(
			model.ExitGeneralError, "failed to determine working directory", err)
	}

	opts := model.RunOptions{
		ProjectDir: projectDir,
		Update:     update,
		SysCaps:    sysCaps,
	}

	// Arguments before a `--` separator: at most one, the image override.
	// Arguments after it are the command to run inside the container.
	dash := cmd.ArgsLenAtDash()
	positional := args
	if dash >= 0 {
		positional = args[:dash]
		opts.Command = args[dash:]
	}
	switch len(positional) {
	case 0:
	case 1:
		opts.ImageOverride = positional[0]
	default:
		return model.RunOptions{}, model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("expected at most one image argument, got %d", len(positional)),
		)
	}

	return opts, nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode — stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
